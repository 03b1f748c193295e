// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/vechain/nftstaking/api/utils"
	"github.com/vechain/nftstaking/ledger"
)

var logger = log.New("pkg", "subscriptions")

// SetLogger replaces the package logger.
func SetLogger(l log.Logger) {
	logger = l
}

const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second
	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second
	// send pings to peer with this period, must be less than pongWait
	pingPeriod = (pongWait * 7) / 10
)

type Subscriptions struct {
	ledger         *ledger.Ledger
	backtraceLimit uint32
	upgrader       *websocket.Upgrader
	done           chan struct{}
	wg             sync.WaitGroup

	mu sync.Mutex // guards done against new connections
}

func New(ledger *ledger.Ledger, allowedOrigins []string, backtraceLimit uint32) *Subscriptions {
	s := &Subscriptions{
		ledger:         ledger,
		backtraceLimit: backtraceLimit,
		done:           make(chan struct{}),
	}
	s.upgrader = &websocket.Upgrader{
		EnableCompression: true,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if allowed == "*" || allowed == strings.ToLower(origin) {
					return true
				}
			}
			return false
		},
	}
	return s
}

func (s *Subscriptions) parsePosition(req *http.Request) (uint32, error) {
	last, err := s.ledger.View().LastRound()
	if err != nil {
		return 0, err
	}
	posStr := req.URL.Query().Get("pos")
	if posStr == "" {
		return last, nil
	}

	pos, err := strconv.ParseUint(posStr, 10, 32)
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "pos"))
	}
	if uint32(pos) > last {
		return 0, utils.BadRequest(errors.New("pos: round not distributed yet"))
	}
	if last-uint32(pos) > s.backtraceLimit {
		return 0, utils.Forbidden(errors.New("pos: backtrace limit exceeded"))
	}
	return uint32(pos), nil
}

func (s *Subscriptions) handleSubjectRounds(w http.ResponseWriter, req *http.Request) error {
	pos, err := s.parsePosition(req)
	if err != nil {
		return err
	}
	// register the waiter before the first read so no round is missed
	waiter := s.ledger.NewRoundWaiter()
	reader := newRoundReader(s.ledger, pos)

	conn, closed, err := s.setupConn(w, req)
	// the connection is hijacked from here, errors are not written to the response
	if err != nil {
		logger.Debug("upgrade to websocket", "err", err)
		return nil
	}
	defer s.wg.Done()

	err = s.pipe(conn, reader, waiter.C, closed)
	s.closeConn(conn, err)
	return nil
}

func (s *Subscriptions) setupConn(w http.ResponseWriter, req *http.Request) (*websocket.Conn, chan struct{}, error) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	select {
	case <-s.done:
		s.mu.Unlock()
		conn.Close()
		return nil, nil, errors.New("subscriptions closed")
	default:
	}
	s.wg.Add(1)
	s.mu.Unlock()

	closed := make(chan struct{})
	// the reader goroutine processes pongs and detects the peer going away
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logger.Debug("websocket read", "err", err)
				return
			}
		}
	}()
	return conn, closed, nil
}

func (s *Subscriptions) closeConn(conn *websocket.Conn, err error) {
	var msg []byte
	if err != nil {
		msg = websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error())
	} else {
		msg = websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	}
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		logger.Debug("write close message", "err", err)
	}

	if err := conn.Close(); err != nil {
		logger.Debug("close websocket", "err", err)
	}
}

func (s *Subscriptions) pipe(conn *websocket.Conn, reader *roundReader, wake func() <-chan bool, closed chan struct{}) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		msgs, hasMore, err := reader.Read()
		if err != nil {
			return err
		}
		for _, msg := range msgs {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return err
			}
		}
		if hasMore {
			select {
			case <-s.done:
				return nil
			case <-closed:
				return nil
			default:
				continue
			}
		}

		select {
		case <-s.done:
			return nil
		case <-closed:
			return nil
		case <-wake():
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

// Close ends all subscriptions and waits for their handlers to return.
func (s *Subscriptions) Close() {
	s.mu.Lock()
	close(s.done)
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/rounds").
		Methods(http.MethodGet).
		Name("WS /subscriptions/rounds").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubjectRounds))
}
