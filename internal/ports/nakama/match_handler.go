package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"

	"github.com/floriangiral/Bougnat-darts-counter/internal/app"
	"github.com/floriangiral/Bougnat-darts-counter/internal/bot"
	"github.com/floriangiral/Bougnat-darts-counter/internal/config"
	"github.com/floriangiral/Bougnat-darts-counter/internal/domain"
	"github.com/floriangiral/Bougnat-darts-counter/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// MatchLabelKeyOpenSeats is the label key match listings filter on.
	MatchLabelKeyOpenSeats = "open"

	// EnvGameDefaultsPath optionally points at a preset catalogue file.
	EnvGameDefaultsPath = "x01_game_defaults_path"

	// Bot configuration environment keys.
	EnvBotsEnabled      = "x01_bots_enabled"
	EnvBotMinDelaySec   = "x01_bot_min_delay_sec"
	EnvBotMaxDelaySec   = "x01_bot_max_delay_sec"
	EnvBotAutoFillDelay = "x01_bot_auto_fill_delay_sec"

	// DefaultSeatCount is used when match creation does not say otherwise.
	DefaultSeatCount = 2
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     []string                    `json:"seats"`      // user ids in join order, empty string means open
	OwnerSeat int                         `json:"owner_seat"` // seat allowed to start the match
	Tick      int64                       `json:"tick"`
	StartTick int64                       `json:"start_tick"` // tick when the current match began
	Presences map[string]runtime.Presence `json:"-"`
	App       *app.Service                `json:"-"`
	Defaults  config.GameDefaults         `json:"-"`
	Archive   ports.ArchivePort           `json:"-"`
	Match     *domain.MatchState          `json:"-"` // nil while in the lobby
	Archived  bool                        `json:"archived"`

	BotsEnabled          bool                  `json:"bots_enabled"`
	BotMinDelay          int                   `json:"bot_min_delay"`           // min seconds a bot waits before throwing
	BotMaxDelay          int                   `json:"bot_max_delay"`           // max seconds a bot waits before throwing
	BotAutoFillDelay     int                   `json:"bot_auto_fill_delay"`     // seconds before a lone player gets a bot opponent
	BotWaitUntil         int64                 `json:"bot_wait_until"`          // tick when the bot on throw acts
	LastSinglePlayerTick int64                 `json:"last_single_player_tick"` // tick when a single player started waiting
	Bots                 map[string]*bot.Agent `json:"-"`
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) seatOf(userID string) int {
	for i, seat := range ms.Seats {
		if seat == userID {
			return i
		}
	}
	return -1
}

// displayName resolves a seat occupant's visible name, falling back to the
// raw user id for disconnected humans.
func (ms *MatchState) displayName(userID string) string {
	if p, exists := ms.Presences[userID]; exists {
		return p.GetUsername()
	}
	if name := bot.UsernameFor(userID); name != "" {
		return name
	}
	return userID
}

func (ms *MatchState) phase() string {
	switch {
	case ms.Match == nil:
		return "lobby"
	case ms.Match.Status == domain.StatusFinished:
		return "finished"
	default:
		return "playing"
	}
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	state := &MatchState{
		Seats:     make([]string, seatCount(params)),
		OwnerSeat: -1,
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(),
		Defaults:  config.Default(),
		Archive:   NewArchiveAdapter(nk),
		Bots:      make(map[string]*bot.Agent),
	}

	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if path := env[EnvGameDefaultsPath]; path != "" {
			loaded, err := config.Load(path)
			if err != nil {
				logger.Warn("MatchInit: Could not load game defaults from %s: %v", path, err)
			} else {
				state.Defaults = loaded
			}
		}
		state.BotsEnabled = env[EnvBotsEnabled] == "true"
		if i, err := strconv.Atoi(env[EnvBotMinDelaySec]); err == nil {
			state.BotMinDelay = i
		}
		if i, err := strconv.Atoi(env[EnvBotMaxDelaySec]); err == nil {
			state.BotMaxDelay = i
		}
		if i, err := strconv.Atoi(env[EnvBotAutoFillDelay]); err == nil {
			state.BotAutoFillDelay = i
		}
	}

	// Defaults if not set
	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = 5
	}

	labelBytes, err := marshalLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // one tick per second drives the match clock
	return state, tickRate, string(labelBytes)
}

// seatCount resolves the requested table size from creation params. X01
// supports solo practice, head to head and 2v2.
func seatCount(params map[string]interface{}) int {
	var n int
	switch v := params["players"].(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		n = int(v)
	case string:
		n, _ = strconv.Atoi(v)
	}
	switch n {
	case 1, 2, 4:
		return n
	default:
		return DefaultSeatCount
	}
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Returning players keep their seat across reconnects.
	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}
	if matchState.Match != nil {
		return state, false, "Match already started"
	}
	if matchState.GetOpenSeatsCount() <= 0 {
		// A lobby bot can still make way for a human.
		hasBot := false
		for _, seat := range matchState.Seats {
			if bot.IsBot(seat) {
				hasBot = true
				break
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		if matchState.seatOf(p.GetUserId()) >= 0 {
			// Reconnect; resend the authoritative state privately.
			mh.sendSnapshot(matchState, dispatcher, logger, p)
			continue
		}

		assigned := false
		for i, seat := range matchState.Seats {
			if seat == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		// In the lobby a human displaces a bot.
		if !assigned && matchState.Match == nil {
			for i, seat := range matchState.Seats {
				if bot.IsBot(seat) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seat, p.GetUserId(), i)
					delete(matchState.Bots, seat)
					matchState.Seats[i] = p.GetUserId()
					break
				}
			}
		}
	}

	matchState.ensureHumanOwner()

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastLobby(matchState, dispatcher, logger)

	return matchState
}

// ensureHumanOwner keeps the owner seat on a connected human; bots never own
// a match.
func (ms *MatchState) ensureHumanOwner() {
	if ms.OwnerSeat >= 0 && ms.Seats[ms.OwnerSeat] != "" && !bot.IsBot(ms.Seats[ms.OwnerSeat]) {
		return
	}
	ms.OwnerSeat = -1
	for i, seat := range ms.Seats {
		if seat != "" && !bot.IsBot(seat) {
			ms.OwnerSeat = i
			return
		}
	}
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		// Seats are only freed in the lobby. Once the match has started the
		// seat stays reserved so the player can reconnect.
		if matchState.Match == nil {
			if i := matchState.seatOf(p.GetUserId()); i >= 0 {
				matchState.Seats[i] = ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
			}
		}
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	matchState.ensureHumanOwner()

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastLobby(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartMatch:
			mh.handleStartMatch(ctx, matchState, dispatcher, logger, msg)
		case OpSubmitTurn:
			mh.handleSubmitTurn(ctx, matchState, dispatcher, logger, msg)
		case OpUndoTurn:
			mh.handleUndoTurn(ctx, matchState, dispatcher, logger, msg)
		case OpSwitchStarter:
			mh.handleSwitchStarter(ctx, matchState, dispatcher, logger, msg)
		case OpReorderDoubles:
			mh.handleReorderDoubles(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Match == nil {
		mh.autoFillLobby(state, dispatcher, logger)
		return
	}
	if state.Match.Status != domain.StatusActive {
		return
	}

	current := state.Match.CurrentContestant()
	if !bot.IsBot(current.ID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := state.BotMinDelay
		if state.BotMaxDelay > state.BotMinDelay {
			delay += rand.Intn(state.BotMaxDelay - state.BotMinDelay + 1)
		}
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s will throw at tick %d (current %d)", current.ID, state.BotWaitUntil, state.Tick)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[current.ID]
	if !exists {
		var err error
		agent, err = bot.NewAgent(current.ID)
		if err != nil {
			logger.Error("processBots: Failed to create agent for %s: %v", current.ID, err)
			return
		}
		state.Bots[current.ID] = agent
	}

	remaining := state.Match.CurrentLeg.Remaining[state.Match.TeamIndex(current.TeamID)]
	score, darts := agent.Throw(remaining, state.Match.Config.CheckOut)
	if err := mh.applyVisit(ctx, state, dispatcher, logger, score, darts); err != nil {
		logger.Error("processBots: Bot %s visit rejected: %v (score=%d darts=%d)", current.ID, err, score, darts)
	}
}

// autoFillLobby gives a lone player a bot opponent after a short wait.
func (mh *matchHandler) autoFillLobby(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	humans := 0
	for _, seat := range state.Seats {
		if seat != "" && !bot.IsBot(seat) {
			humans++
		}
	}
	if humans != 1 || state.GetOpenSeatsCount() == 0 {
		state.LastSinglePlayerTick = 0
		return
	}

	if state.LastSinglePlayerTick == 0 {
		state.LastSinglePlayerTick = state.Tick
		logger.Debug("autoFillLobby: Single player detected, starting auto-fill timer.")
		return
	}
	if state.Tick-state.LastSinglePlayerTick < int64(state.BotAutoFillDelay) {
		return
	}
	state.LastSinglePlayerTick = 0

	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		identity := bot.GetIdentity(i)
		agent, err := bot.NewAgent(identity.UserID)
		if err != nil {
			logger.Error("autoFillLobby: Failed to create agent for %s: %v", identity.UserID, err)
			continue
		}
		state.Seats[i] = identity.UserID
		state.Bots[identity.UserID] = agent
		logger.Info("autoFillLobby: Added bot %s (%s) to seat %d", identity.Username, identity.UserID, i)
	}

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastLobby(state, dispatcher, logger)
}

func (mh *matchHandler) handleStartMatch(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartMatch: Request received from %s (seat=%d, owner_seat=%d)", senderID, senderSeat, state.OwnerSeat)

	if state.Match != nil {
		mh.sendError(state, dispatcher, logger, senderID, 409, "match already started")
		return
	}
	if senderSeat != state.OwnerSeat {
		logger.Warn("StartMatch: User %s tried to start but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, 403, "only the owner can start the match")
		return
	}
	if state.GetOpenSeatsCount() > 0 {
		mh.sendError(state, dispatcher, logger, senderID, 400, "waiting for players")
		return
	}

	request := &StartMatchRequest{}
	if len(msg.GetData()) > 0 {
		if err := json.Unmarshal(msg.GetData(), request); err != nil {
			logger.Warn("StartMatch: Invalid StartMatchRequest from %s: %v", senderID, err)
			mh.sendError(state, dispatcher, logger, senderID, 400, "invalid start request")
			return
		}
	}

	cfg := state.Defaults.PresetByID(request.PresetID).GameConfig()
	cfg.Doubles = request.Doubles

	roster := make([]domain.Contestant, 0, len(state.Seats))
	for _, userID := range state.Seats {
		teamID := userID
		if request.Doubles {
			teamID = request.Teams[userID]
		}
		roster = append(roster, domain.Contestant{ID: userID, DisplayName: state.displayName(userID), TeamID: teamID})
	}

	match, events, err := state.App.CreateMatch(roster, cfg)
	if err != nil {
		logger.Error("StartMatch: Failed to create match: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	state.Match = match
	state.StartTick = state.Tick
	state.Archived = false

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	mh.sendSnapshot(state, dispatcher, logger, nil)

	logger.Info("StartMatch: Match %s started with %d players.", match.ID, len(roster))
}

func (mh *matchHandler) handleSubmitTurn(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Match == nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, "match not started")
		return
	}

	request := &SubmitTurnRequest{}
	if err := json.Unmarshal(msg.GetData(), request); err != nil {
		logger.Warn("handleSubmitTurn: Invalid SubmitTurnRequest from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "invalid turn request")
		return
	}

	// Only the contestant on throw may record a visit.
	if state.Match.Status == domain.StatusActive && state.Match.CurrentContestant().ID != senderID {
		mh.sendError(state, dispatcher, logger, senderID, 403, "not your turn")
		return
	}

	if err := mh.applyVisit(ctx, state, dispatcher, logger, request.Score, request.Darts); err != nil {
		logger.Warn("handleSubmitTurn: User %s rejected: %v (score=%d darts=%d)", senderID, err, request.Score, request.Darts)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
	}
}

// applyVisit runs one visit through the service, broadcasts the resulting
// events and handles the end of the match: the clock is stamped and the
// final state archived exactly once.
func (mh *matchHandler) applyVisit(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, score, darts int) error {
	next, events, err := state.App.SubmitTurn(state.Match, score, darts)
	if err != nil {
		return err
	}
	advanced := next != state.Match
	state.Match = next

	if advanced && next.Status == domain.StatusFinished {
		next.ElapsedSeconds = state.Tick - state.StartTick
		mh.updateLabel(state, dispatcher, logger)
		mh.archiveMatch(ctx, state, logger)
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	return nil
}

func (mh *matchHandler) handleUndoTurn(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Match == nil || state.seatOf(senderID) < 0 {
		mh.sendError(state, dispatcher, logger, senderID, 400, "match not started")
		return
	}

	wasFinished := state.Match.Status == domain.StatusFinished
	next, events, err := state.App.UndoTurn(state.Match)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	state.Match = next

	if wasFinished && next.Status == domain.StatusActive {
		// The winning visit was taken back; the match is live again.
		state.Archived = false
		mh.updateLabel(state, dispatcher, logger)
	}

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleSwitchStarter(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Match == nil || state.seatOf(senderID) < 0 {
		mh.sendError(state, dispatcher, logger, senderID, 400, "match not started")
		return
	}

	next, events, err := state.App.SwitchStartPlayer(state.Match)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	state.Match = next

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleReorderDoubles(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Match == nil || state.seatOf(senderID) < 0 {
		mh.sendError(state, dispatcher, logger, senderID, 400, "match not started")
		return
	}

	request := &ReorderDoublesRequest{}
	if err := json.Unmarshal(msg.GetData(), request); err != nil {
		logger.Warn("handleReorderDoubles: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "invalid reorder request")
		return
	}

	next, events, err := state.App.ReorderForDoubles(state.Match, request.Team1StarterID, request.Team2StarterID, request.StartingTeamID)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	state.Match = next

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

// archiveMatch saves the finished match into every seated player's history.
func (mh *matchHandler) archiveMatch(ctx context.Context, state *MatchState, logger runtime.Logger) {
	if state.Archive == nil || state.Archived || state.Match == nil {
		return
	}

	for _, userID := range state.Seats {
		if userID == "" || bot.IsBot(userID) {
			continue
		}
		if err := state.Archive.SaveMatch(ctx, userID, state.Match); err != nil {
			logger.Error("archiveMatch: Failed to save match %s for %s: %v", state.Match.ID, userID, err)
		}
	}
	state.Archived = true
}

// broadcastEvent converts an app event to its wire frame and dispatches it.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode := eventOpCode(ev.Kind)
	if opCode < 0 {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Targeted events must not leak to the whole match when none of the
		// intended recipients are connected.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// broadcastLobby announces the current seat assignment to everyone.
func (mh *matchHandler) broadcastLobby(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var roster []RosterEntry
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		roster = append(roster, RosterEntry{
			UserID:      userID,
			DisplayName: state.displayName(userID),
			Seat:        i,
			IsOwner:     i == state.OwnerSeat,
		})
	}

	bytes, err := json.Marshal(LobbyMessage{Roster: roster, OpenSeats: state.GetOpenSeatsCount()})
	if err != nil {
		logger.Error("Failed to marshal lobby message: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpPlayerJoined, bytes, nil, nil, true)
}

// sendSnapshot sends the authoritative state, either to one presence or to
// everyone when to is nil.
func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, to runtime.Presence) {
	if state.Match == nil {
		return
	}

	bytes, err := json.Marshal(SnapshotMessage{Match: state.Match})
	if err != nil {
		logger.Error("Failed to marshal snapshot: %v", err)
		return
	}

	var recipients []runtime.Presence
	if to != nil {
		recipients = []runtime.Presence{to}
	}
	dispatcher.BroadcastMessage(OpStateSnapshot, bytes, recipients, nil, true)
}

// sendError sends an ErrorMessage to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := json.Marshal(ErrorMessage{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal ErrorMessage: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpError, bytes, []runtime.Presence{presence}, nil, true)
}

// marshalLabel renders the match label clients filter on in match listings.
func marshalLabel(state *MatchState) ([]byte, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		MatchLabelKeyOpenSeats: state.GetOpenSeatsCount(),
		"game":                 "x01",
		"state":                state.phase(),
	})
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(label)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelBytes, err := marshalLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
