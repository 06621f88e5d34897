package handlers

import (
	"errors"
	"log"

	"Gavel/services/auction"
	socketio_types "Gavel/services/socket_io/types"

	"github.com/zishang520/socket.io/v2/socket"
)

func HandleStartAuction(engine *auction.Engine, client *socket.Socket,
	sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())

		var req struct {
			Queue []auction.Lot `json:"queue"`
		}
		if err := decodeArg(firstArg(args), &req); err != nil || len(req.Queue) == 0 {
			client.Emit("error_message", "Invalid auction queue.")
			return
		}

		err := engine.StartAuction(sess.RoomID, connID, req.Queue)
		switch {
		case err == nil:
		case errors.Is(err, auction.ErrUnauthorized):
			client.Emit("error_message", "Only the host can start the auction.")
		case errors.Is(err, auction.ErrStateConflict):
			client.Emit("error_message", "Auction cannot be started right now.")
		default:
			log.Printf("[AUCTION-ERROR] start auction: %v", err)
			client.Emit("error_message", "Could not start auction.")
		}
	}
}

func HandlePlaceBid(engine *auction.Engine, client *socket.Socket,
	sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())
		teamKey := argString(args, "teamKey")
		amount := argInt(args, "amount")

		err := engine.PlaceBid(sess.RoomID, connID, sess.PlayerID, teamKey, amount)
		switch {
		case err == nil:
		case errors.Is(err, auction.ErrAuctionNotActive):
			// A bid that raced the hammer or arrived while paused is simply
			// late; the client already sees the authoritative state.
		case errors.Is(err, auction.ErrAlreadyHighBidder):
			client.Emit("error_message", "You are already the highest bidder.")
		case errors.Is(err, auction.ErrBidTooLow):
			client.Emit("error_message", "Bid must be higher than the current bid.")
		case errors.Is(err, auction.ErrInsufficientBudget):
			client.Emit("error_message", "Not enough budget for that bid.")
		case errors.Is(err, auction.ErrUnauthorized):
			client.Emit("error_message", "You do not own that team.")
		default:
			log.Printf("[BID-ERROR] room %s team %s: %v", sess.RoomID, teamKey, err)
			client.Emit("error_message", "Bid rejected.")
		}
	}
}

func HandleFinalizeSale(engine *auction.Engine, client *socket.Socket,
	sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())

		err := engine.AdminFinalize(sess.RoomID, connID)
		switch {
		case err == nil:
		case errors.Is(err, auction.ErrUnauthorized):
			client.Emit("error_message", "Only the host can close a sale.")
		case errors.Is(err, auction.ErrStateConflict):
			// Lot already being resolved; the duplicate trigger is dropped.
		default:
			log.Printf("[SALE-ERROR] room %s: %v", sess.RoomID, err)
		}
	}
}

func HandleToggleTimer(engine *auction.Engine, client *socket.Socket,
	sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())

		err := engine.ToggleTimer(sess.RoomID, connID)
		switch {
		case err == nil:
		case errors.Is(err, auction.ErrUnauthorized):
			client.Emit("error_message", "Only the host can pause the timer.")
		default:
			log.Printf("[TIMER-ERROR] toggle in room %s: %v", sess.RoomID, err)
		}
	}
}

func HandleEndAuction(engine *auction.Engine, client *socket.Socket,
	sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())

		err := engine.EndAuction(sess.RoomID, connID)
		switch {
		case err == nil:
		case errors.Is(err, auction.ErrUnauthorized):
			client.Emit("error_message", "Only the host can end the auction.")
		default:
			log.Printf("[AUCTION-ERROR] end auction in room %s: %v", sess.RoomID, err)
		}
	}
}
