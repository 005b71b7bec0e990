package websocket

import (
	"context"
	"log/slog"

	"github.com/gorilla/websocket"
)

const gameStatusLeave = "leave"

func (that *Server) handleNewGame(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleNewGame")

	var payloadReq gameRequest
	if err := decodePayload(msg, &payloadReq); err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	switch payloadReq.Variant {
	case "", variantClassic:
		mode := payloadReq.Mode
		if mode == "" {
			mode = that.defaultMode
		}

		game, err := that.gameManager.StartGame(ctx, mode)
		if err != nil {
			return that.replyError(log, conn, msg.Action, err)
		}

		log.Info("game created", "gameID", game.ID)

		return that.sendMessage(conn, msg.Action, gamePayload(game))
	case variantUltimate:
		game, err := that.gameManager.StartUltimateGame(ctx)
		if err != nil {
			return that.replyError(log, conn, msg.Action, err)
		}

		log.Info("ultimate game created", "gameID", game.ID)

		return that.sendMessage(conn, msg.Action, ultimatePayload(game))
	default:
		return that.sendErrorResponse(conn, msg.Action, errUnknownVariant.Error())
	}
}

func (that *Server) handleGameTurn(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleGameTurn")

	var payloadReq turnRequest
	if err := decodePayload(msg, &payloadReq); err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if payloadReq.GameID == "" {
		return that.sendErrorResponse(conn, msg.Action, errMissingGameID.Error())
	}

	log = log.With("gameID", payloadReq.GameID)

	if !payloadReq.isUltimate() {
		game, err := that.gameManager.MakeTurn(ctx, payloadReq.GameID, *payloadReq.Cell)
		if err != nil {
			return that.replyError(log, conn, msg.Action, err)
		}

		return that.sendMessage(conn, msg.Action, gamePayload(game))
	}

	move, err := payloadReq.ultimateMove()
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	game, err := that.gameManager.MakeUltimateTurn(ctx, payloadReq.GameID, move)
	if err != nil {
		return that.replyError(log, conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, ultimatePayload(game))
}

func (that *Server) handleBotTurn(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleBotTurn")

	payloadReq, ok, err := that.decodeGameRequest(conn, msg)
	if !ok {
		return err
	}

	game, cell, err := that.gameManager.MakeBotTurn(ctx, payloadReq.GameID)
	if err != nil {
		return that.replyError(log.With("gameID", payloadReq.GameID), conn, msg.Action, err)
	}

	payload := gamePayload(game)
	payload.Cell = &cell

	return that.sendMessage(conn, msg.Action, payload)
}

func (that *Server) handleGameState(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleGameState")

	payloadReq, ok, err := that.decodeGameRequest(conn, msg)
	if !ok {
		return err
	}

	log = log.With("gameID", payloadReq.GameID)

	switch payloadReq.Variant {
	case "", variantClassic:
		game, err := that.gameManager.GetGame(ctx, payloadReq.GameID)
		if err != nil {
			return that.replyError(log, conn, msg.Action, err)
		}

		return that.sendMessage(conn, msg.Action, gamePayload(game))
	case variantUltimate:
		game, err := that.gameManager.GetUltimateGame(ctx, payloadReq.GameID)
		if err != nil {
			return that.replyError(log, conn, msg.Action, err)
		}

		return that.sendMessage(conn, msg.Action, ultimatePayload(game))
	default:
		return that.sendErrorResponse(conn, msg.Action, errUnknownVariant.Error())
	}
}

func (that *Server) handleGameReset(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleGameReset")

	payloadReq, ok, err := that.decodeGameRequest(conn, msg)
	if !ok {
		return err
	}

	log = log.With("gameID", payloadReq.GameID)

	switch payloadReq.Variant {
	case "", variantClassic:
		game, err := that.gameManager.ResetGame(ctx, payloadReq.GameID)
		if err != nil {
			return that.replyError(log, conn, msg.Action, err)
		}

		return that.sendMessage(conn, msg.Action, gamePayload(game))
	case variantUltimate:
		game, err := that.gameManager.ResetUltimateGame(ctx, payloadReq.GameID)
		if err != nil {
			return that.replyError(log, conn, msg.Action, err)
		}

		return that.sendMessage(conn, msg.Action, ultimatePayload(game))
	default:
		return that.sendErrorResponse(conn, msg.Action, errUnknownVariant.Error())
	}
}

func (that *Server) handleGameLeave(ctx context.Context, conn *websocket.Conn, msg *Message) error {
	log := that.logger.With("method", "handleGameLeave")

	payloadReq, ok, err := that.decodeGameRequest(conn, msg)
	if !ok {
		return err
	}

	log = log.With("gameID", payloadReq.GameID)

	switch payloadReq.Variant {
	case "", variantClassic:
		err = that.gameManager.EndGame(ctx, payloadReq.GameID)
	case variantUltimate:
		err = that.gameManager.EndUltimateGame(ctx, payloadReq.GameID)
	default:
		return that.sendErrorResponse(conn, msg.Action, errUnknownVariant.Error())
	}

	if err != nil {
		return that.replyError(log, conn, msg.Action, err)
	}

	log.Info("Player leaving")

	return that.sendMessage(conn, msg.Action, ResponsePayload{Status: gameStatusLeave})
}

// decodeGameRequest reads a request that must name a game. When ok is false the client
// has already been answered and err is the result of that reply.
func (that *Server) decodeGameRequest(conn *websocket.Conn, msg *Message) (gameRequest, bool, error) {
	var payloadReq gameRequest
	if err := decodePayload(msg, &payloadReq); err != nil {
		return payloadReq, false, that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if payloadReq.GameID == "" {
		return payloadReq, false, that.sendErrorResponse(conn, msg.Action, errMissingGameID.Error())
	}

	return payloadReq, true, nil
}

func (that *Server) replyError(log *slog.Logger, conn *websocket.Conn, action string, err error) error {
	errorMsg, known := errorMessage(err)
	if !known {
		log.Error("failed to process request", "action", action, "error", err)
	}

	return that.sendErrorResponse(conn, action, errorMsg)
}
