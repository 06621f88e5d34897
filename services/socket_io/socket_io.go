package socket_io

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Gavel/services/auction"
	"Gavel/services/socket_io/handlers"
	socketio_types "Gavel/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, engine *auction.Engine) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.Connections = make(map[string]*socket.Socket)
	sio.Sessions = make(map[string]*socketio_types.Session)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		connID := string(client.Id())

		sess := sessionFromHandshake(client)
		(*socketio_types.SocketServer)(sio).AddConnection(connID, client, sess)

		fmt.Println("An individual just connected!: ", sess.PlayerID)

		// Room lifecycle
		client.On("create_room", handlers.HandleCreateRoom(engine, client, (*socketio_types.SocketServer)(sio), sess))
		client.On("join_room", handlers.HandleJoinRoom(engine, client, (*socketio_types.SocketServer)(sio), sess))
		client.On("leave_room", handlers.HandleLeaveRoom(engine, client, (*socketio_types.SocketServer)(sio), sess))

		// Lobby management
		client.On("claim_lobby_team", handlers.HandleClaimTeam(engine, client, sess))
		client.On("reclaim_team", handlers.HandleReclaimTeam(engine, client, sess))
		client.On("request_reclaim_manual", handlers.HandleRequestReclaimManual(engine, client, sess))
		client.On("admin_reclaim_decision", handlers.HandleAdminReclaimDecision(engine, client, sess))
		client.On("admin_rename_team", handlers.HandleRenameTeam(engine, client, sess))
		client.On("update_lobby_teams", handlers.HandleUpdateLobbyTeams(engine, client, sess))
		client.On("update_player_name", handlers.HandleUpdatePlayerName(engine, client, sess))

		// Auction flow
		client.On("start_auction", handlers.HandleStartAuction(engine, client, sess))
		client.On("place_bid", handlers.HandlePlaceBid(engine, client, sess))
		client.On("finalize_sale", handlers.HandleFinalizeSale(engine, client, sess))
		client.On("toggle_timer", handlers.HandleToggleTimer(engine, client, sess))
		client.On("end_auction_trigger", handlers.HandleEndAuction(engine, client, sess))

		// Reconnection support
		client.On("request_sync", handlers.HandleRequestSync(engine, client, sess))
		client.On("check_active_room", handlers.HandleCheckActiveRoom(engine, client, sess))

		// Post-auction
		client.On("submit_squad", handlers.HandleSubmitSquad(engine, client, sess))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(engine, client, (*socketio_types.SocketServer)(sio), sess))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}

// sessionFromHandshake builds the per-connection session record from the
// handshake auth payload. Clients without a persistent player id get a
// fresh guest id, which means no reconnect rights.
func sessionFromHandshake(client *socket.Socket) *socketio_types.Session {
	sess := &socketio_types.Session{}

	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if ok {
		sess.PlayerID, _ = authData["playerId"].(string)
		sess.Name, _ = authData["playerName"].(string)
		sess.Email, _ = authData["email"].(string)
	}
	if sess.PlayerID == "" {
		sess.PlayerID = uuid.NewString()
	}
	return sess
}
