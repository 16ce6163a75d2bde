/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"net/http"

	"github.com/dburkart/abacus/pkg/proto"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// handleStream evaluates every text frame received on a websocket and answers
// each with a JSON CalculateResponse or ErrResponse, in order.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		log.Debug().Err(err).Msg("unable to upgrade connection")
		return
	}
	defer conn.Close()

	s.metrics.IncStreamConnections()
	if s.maxLength > 0 {
		conn.SetReadLimit(int64(s.maxLength) + 1)
	}

	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error().Err(err).Msg("error reading from the stream")
			}
			return
		}

		if kind != websocket.TextMessage {
			err = conn.WriteJSON(proto.ErrResponse{Detail: "only text frames are accepted"})
		} else {
			expr := string(msg)
			_, resp := CalculateResponse(expr, s.maxLength)
			s.record(log, expr, resp)
			err = conn.WriteJSON(resp)
		}

		if err != nil {
			log.Error().Err(err).Msg("unable to write to the stream")
			return
		}
	}
}
