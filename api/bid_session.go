package api

import (
	"context"
	"errors"
	"fmt"
	"time"
	
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/bidding"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/room"
	"github.com/Mohamed-Ahmed-12/auction-platform/internal/util"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1024
)

// bidSession is one joined bidder connection. The read loop decides bids one at a time;
// the write loop is the only writer of data frames and drains the member's buffer.
type bidSession struct {
	server     *Server
	conn       *websocket.Conn
	itemID     int64
	bidder     bidding.Bidder
	member     *room.Member
	membership *room.Membership
}

func newBidSession(server *Server, conn *websocket.Conn, itemID int64, bidder bidding.Bidder) *bidSession {
	member := room.NewMember(util.GenerateMemberID(), bidder.ID, bidder.Name, server.config.MemberBufferSize)
	
	return &bidSession{
		server: server,
		conn:   conn,
		itemID: itemID,
		bidder: bidder,
		member: member,
	}
}

func (s *bidSession) run(ctx context.Context) {
	s.membership = s.server.hub.Join(s.itemID, s.member)
	s.broadcastPresence(ctx, room.MessageTypeUserJoined, fmt.Sprintf("%s joined the room", s.bidder.Name))
	
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writePump()
	}()
	
	clean := s.readPump(ctx)
	
	s.membership.Leave()
	<-writerDone
	
	if clean {
		s.broadcastPresence(context.Background(), room.MessageTypeUserLeft, fmt.Sprintf("%s left the room", s.bidder.Name))
	}
	
	log.Info().
		Int64("item_id", s.itemID).
		Str("member_id", s.member.ID).
		Str("bidder_id", s.bidder.ID).
		Bool("clean", clean).
		Msg("bidder disconnected")
}

// readPump reads bids until the connection ends. It reports whether the peer closed
// the connection cleanly.
func (s *bidSession) readPump(ctx context.Context) bool {
	idle := s.server.config.IdleTimeout
	
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(idle))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(idle))
	})
	
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return true
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Int64("item_id", s.itemID).Str("member_id", s.member.ID).Msg("connection lost")
			}
			return false
		}
		
		_ = s.conn.SetReadDeadline(time.Now().Add(idle))
		s.handleBid(ctx, data)
	}
}

// writePump writes queued messages and keeps the connection alive with pings.
// Once the member is dropped it sends the recorded close status and closes the connection.
func (s *bidSession) writePump() {
	ticker := time.NewTicker(s.server.config.IdleTimeout * 9 / 10)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()
	
	for {
		select {
		case msg := <-s.member.Outbound():
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg.Data); err != nil {
				s.member.Drop(websocket.CloseAbnormalClosure, "write failed")
				return
			}
		
		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				s.member.Drop(websocket.CloseAbnormalClosure, "ping failed")
				return
			}
		
		case <-s.member.Done():
			code, reason := s.member.CloseStatus()
			_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
			return
		}
	}
}

func (s *bidSession) handleBid(ctx context.Context, data []byte) {
	raw, err := bidding.DecodeBidMessage(data)
	if err != nil {
		s.reply(errorPayload{Error: "Invalid bid format"})
		return
	}
	
	outcome, err := s.server.arbiter.PlaceBid(ctx, s.itemID, s.bidder, raw)
	if err != nil {
		var bidErr *bidding.Error
		if errors.As(err, &bidErr) && bidErr.Kind == bidding.KindNotFound {
			s.reply(errorPayload{Error: "Item not found"})
			return
		}
		
		log.Err(err).
			Int64("item_id", s.itemID).
			Str("bidder_id", s.bidder.ID).
			Msg("failed to place bid")
		s.reply(errorPayload{Error: "Failed to place bid", Details: err.Error()})
		return
	}
	
	if outcome.Rejection != nil {
		s.reply(rejectionPayload(outcome.Rejection))
		return
	}
	
	closure := outcome.Closure
	log.Info().
		Int64("item_id", s.itemID).
		Str("bidder_id", s.bidder.ID).
		Str("amount", closure.Bid.Amount.StringFixed(2)).
		Msg("bid accepted, item closed")
	
	s.broadcast(ctx, room.MessageTypeBid, bidAcceptedPayload{
		Bid:    newBidRecord(closure.Bid),
		Closed: outcome.Closed,
	}, "")
	
	closedAt := closure.Bid.CreatedAt
	if closure.Item.ClosedAt != nil {
		closedAt = *closure.Item.ClosedAt
	}
	s.broadcast(ctx, room.MessageTypeItemClosed, itemClosedPayload{
		Type:         room.MessageTypeItemClosed,
		ItemID:       closure.Item.ID,
		WinnerID:     closure.Result.WinnerID,
		WinningBidID: closure.Result.WinningBidID,
		Amount:       closure.Bid.Amount.StringFixed(2),
		ClosedAt:     closedAt,
	}, "")
}

func rejectionPayload(r *bidding.Rejection) errorPayload {
	payload := errorPayload{Error: r.Message()}
	if r.Reason == bidding.ReasonBelowMinimum {
		payload.Floor = r.Floor.StringFixed(2)
	}
	return payload
}

// reply sends payload to this connection only, in order with the room's messages.
func (s *bidSession) reply(payload errorPayload) {
	msg, err := room.NewMessage(room.MessageTypeError, payload)
	if err != nil {
		log.Err(err).Msg("failed to encode reply")
		return
	}
	s.member.Send(msg)
}

func (s *bidSession) broadcastPresence(ctx context.Context, msgType, text string) {
	s.broadcast(ctx, msgType, presencePayload{Type: msgType, Message: text}, s.member.ID)
}

func (s *bidSession) broadcast(ctx context.Context, msgType string, payload any, exclude string) {
	msg, err := room.NewMessage(msgType, payload)
	if err != nil {
		log.Err(err).Msg("failed to encode room message")
		return
	}
	if exclude != "" {
		msg = msg.Excluding(exclude)
	}
	
	if err = s.server.hub.Broadcast(ctx, s.itemID, msg); err != nil {
		log.Err(err).
			Int64("item_id", s.itemID).
			Str("type", msgType).
			Msg("failed to relay room message, delivering locally")
		s.server.hub.Deliver(s.itemID, msg)
	}
}
