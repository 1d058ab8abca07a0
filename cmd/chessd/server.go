package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"chesskit/internal/chess"
	kiterrors "chesskit/internal/errors"
	"chesskit/internal/game"
	"chesskit/internal/pgn"
	"chesskit/internal/render"
)

// hostedGame is one game plus its own lock and WebSocket subscribers. The
// engine itself provides no locking, so every mutation goes through mu.
type hostedGame struct {
	mu      sync.Mutex
	game    *game.Game
	clients map[*websocket.Conn]struct{}
}

// Application routes game requests and owns the game store.
type Application struct {
	router   *mux.Router
	mu       sync.RWMutex
	games    map[string]*hostedGame
	nextID   int
	upgrader websocket.Upgrader
}

// NewApplication builds the router and an empty game store.
func NewApplication() *Application {
	app := &Application{
		router: mux.NewRouter(),
		games:  make(map[string]*hostedGame),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	api := app.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/games", app.createGame).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}", app.getGame).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/moves", app.playMove).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/draw", app.claimDraw).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/undo", app.undoMove).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/pgn", app.getPGN).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/svg", app.getSVG).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/ws", app.wsFeed).Methods(http.MethodGet)
	return app
}

// Router returns the HTTP handler.
func (app *Application) Router() http.Handler {
	return app.router
}

// gameState is the JSON representation of a game exposed by the API.
type gameState struct {
	ID         string   `json:"id"`
	FEN        string   `json:"fen"`
	SideToMove string   `json:"sideToMove"`
	State      string   `json:"state"`
	Result     string   `json:"result"`
	DrawReason string   `json:"drawReason,omitempty"`
	LastMove   string   `json:"lastMove,omitempty"`
	LastSAN    string   `json:"lastSan,omitempty"`
	LegalMoves []string `json:"legalMoves"`
	InCheck    bool     `json:"inCheck"`
}

func (app *Application) createGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FEN string `json:"fen"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, err)
			return
		}
	}

	var g *game.Game
	if req.FEN == "" {
		g = game.New()
	} else {
		var err error
		g, err = game.FromFEN(req.FEN)
		if err != nil {
			httpError(w, http.StatusBadRequest, err)
			return
		}
	}

	app.mu.Lock()
	app.nextID++
	id := fmt.Sprintf("g%d", app.nextID)
	hosted := &hostedGame{game: g, clients: make(map[*websocket.Conn]struct{})}
	app.games[id] = hosted
	app.mu.Unlock()

	writeJSON(w, http.StatusCreated, app.stateOf(id, hosted))
}

func (app *Application) lookup(w http.ResponseWriter, r *http.Request) (string, *hostedGame, bool) {
	id := mux.Vars(r)["id"]
	app.mu.RLock()
	hosted, ok := app.games[id]
	app.mu.RUnlock()
	if !ok {
		httpError(w, http.StatusNotFound, fmt.Errorf("no such game %q", id))
		return "", nil, false
	}
	return id, hosted, true
}

func (app *Application) getGame(w http.ResponseWriter, r *http.Request) {
	id, hosted, ok := app.lookup(w, r)
	if !ok {
		return
	}
	hosted.mu.Lock()
	state := app.stateOf(id, hosted)
	hosted.mu.Unlock()
	writeJSON(w, http.StatusOK, state)
}

func (app *Application) playMove(w http.ResponseWriter, r *http.Request) {
	id, hosted, ok := app.lookup(w, r)
	if !ok {
		return
	}
	var req struct {
		SAN string `json:"san"`
		UCI string `json:"uci"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	hosted.mu.Lock()
	defer hosted.mu.Unlock()

	mv, err := resolveMove(hosted.game, req.SAN, req.UCI)
	if err == nil {
		err = hosted.game.PlayMove(mv)
	}
	if err != nil {
		httpError(w, statusFor(err), err)
		return
	}

	state := app.stateOf(id, hosted)
	hosted.broadcast(state)
	writeJSON(w, http.StatusOK, state)
}

// resolveMove accepts either SAN ("Nf3") or long algebraic ("g1f3") input.
func resolveMove(g *game.Game, san, uci string) (chess.Move, error) {
	if san != "" {
		return pgn.ResolveGameSAN(g, san)
	}
	mv, ok := chess.MoveFromString(uci)
	if !ok {
		return chess.Move{}, fmt.Errorf("%q: %w", uci, kiterrors.ErrIllegalMove)
	}
	return mv, nil
}

func (app *Application) claimDraw(w http.ResponseWriter, r *http.Request) {
	id, hosted, ok := app.lookup(w, r)
	if !ok {
		return
	}
	hosted.mu.Lock()
	defer hosted.mu.Unlock()
	if err := hosted.game.ClaimDraw(); err != nil {
		httpError(w, statusFor(err), err)
		return
	}
	state := app.stateOf(id, hosted)
	hosted.broadcast(state)
	writeJSON(w, http.StatusOK, state)
}

func (app *Application) undoMove(w http.ResponseWriter, r *http.Request) {
	id, hosted, ok := app.lookup(w, r)
	if !ok {
		return
	}
	hosted.mu.Lock()
	defer hosted.mu.Unlock()
	if err := hosted.game.UndoMove(); err != nil {
		httpError(w, statusFor(err), err)
		return
	}
	state := app.stateOf(id, hosted)
	hosted.broadcast(state)
	writeJSON(w, http.StatusOK, state)
}

func (app *Application) getPGN(w http.ResponseWriter, r *http.Request) {
	_, hosted, ok := app.lookup(w, r)
	if !ok {
		return
	}
	hosted.mu.Lock()
	out, err := pgn.Write(hosted.game)
	hosted.mu.Unlock()
	if err != nil {
		httpError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-chess-pgn")
	fmt.Fprint(w, out)
}

func (app *Application) getSVG(w http.ResponseWriter, r *http.Request) {
	_, hosted, ok := app.lookup(w, r)
	if !ok {
		return
	}
	hosted.mu.Lock()
	pos := hosted.game.Position()
	var highlight []chess.Square
	if mv, ok := hosted.game.LastMove(); ok {
		highlight = []chess.Square{mv.From, mv.To}
	}
	hosted.mu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	render.Board(w, &pos, render.Options{
		Flipped:   r.URL.Query().Get("flipped") == "1",
		Highlight: highlight,
	})
}

func (app *Application) wsFeed(w http.ResponseWriter, r *http.Request) {
	_, hosted, ok := app.lookup(w, r)
	if !ok {
		return
	}
	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return // Upgrade already replied
	}

	hosted.mu.Lock()
	hosted.clients[conn] = struct{}{}
	hosted.mu.Unlock()

	// Reader loop only detects disconnects; the feed is one-way.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hosted.mu.Lock()
				delete(hosted.clients, conn)
				hosted.mu.Unlock()
				conn.Close()
				return
			}
		}
	}()
}

// broadcast pushes a state snapshot to every subscriber. The caller holds
// the game lock.
func (hg *hostedGame) broadcast(state gameState) {
	for conn := range hg.clients {
		if err := conn.WriteJSON(state); err != nil {
			log.Printf("websocket write: %v", err)
			delete(hg.clients, conn)
			conn.Close()
		}
	}
}

// stateOf snapshots a game for the API. The caller holds the game lock
// except at creation time, when no other reference exists yet.
func (app *Application) stateOf(id string, hosted *hostedGame) gameState {
	g := hosted.game
	pos := g.Position()

	state := gameState{
		ID:         id,
		FEN:        g.FEN(),
		SideToMove: g.SideToMove().String(),
		State:      g.State().String(),
		Result:     g.Result(),
		InCheck:    pos.InCheck(),
	}
	if reason := g.DrawReason(); reason != game.DrawNone {
		state.DrawReason = reason.String()
	}

	legal := g.LegalMoves()
	state.LegalMoves = make([]string, 0, legal.Len())
	for _, mv := range legal {
		san, err := pgn.RenderSAN(&pos, mv)
		if err != nil {
			continue
		}
		state.LegalMoves = append(state.LegalMoves, san)
	}

	if mv, ok := g.LastMove(); ok {
		state.LastMove = mv.String()
		if prev := previousPosition(g); prev != nil {
			if san, err := pgn.RenderSAN(prev, mv); err == nil {
				state.LastSAN = san
			}
		}
	}
	return state
}

// previousPosition replays the game to just before its last move.
func previousPosition(g *game.Game) *chess.Board {
	moves := g.Moves()
	if len(moves) == 0 {
		return nil
	}
	b, err := chess.ParseFEN(g.StartFEN())
	if err != nil {
		return nil
	}
	for _, mv := range moves[:len(moves)-1] {
		if _, err := b.MakeMove(mv); err != nil {
			return nil
		}
	}
	return b
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, kiterrors.ErrGameOver),
		errors.Is(err, kiterrors.ErrDrawNotAvailable):
		return http.StatusConflict
	case errors.Is(err, kiterrors.ErrIllegalMove),
		errors.Is(err, kiterrors.ErrIllegalSAN),
		errors.Is(err, kiterrors.ErrAmbiguousSAN):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func httpError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}
