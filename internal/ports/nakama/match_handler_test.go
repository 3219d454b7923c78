package nakama

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/floriangiral/Bougnat-darts-counter/internal/bot"
	"github.com/floriangiral/Bougnat-darts-counter/internal/config"
	"github.com/floriangiral/Bougnat-darts-counter/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	opCodes      []int64
	payloads     [][]byte
	recipients   [][]runtime.Presence
	labelUpdates int
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.opCodes = append(md.opCodes, opCode)
	md.payloads = append(md.payloads, append([]byte(nil), data...))
	md.recipients = append(md.recipients, presences)
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	return nil
}

func (md *mockDispatcher) sent(opCode int64) bool {
	for _, op := range md.opCodes {
		if op == opCode {
			return true
		}
	}
	return false
}

func (md *mockDispatcher) lastPayload(opCode int64) []byte {
	for i := len(md.opCodes) - 1; i >= 0; i-- {
		if md.opCodes[i] == opCode {
			return md.payloads[i]
		}
	}
	return nil
}

// testPresence is a minimal runtime.Presence for driving handlers.
type testPresence struct {
	userID   string
	username string
}

func (p testPresence) GetUserId() string                 { return p.userID }
func (p testPresence) GetSessionId() string              { return "session-" + p.userID }
func (p testPresence) GetNodeId() string                 { return "node" }
func (p testPresence) GetHidden() bool                   { return false }
func (p testPresence) GetPersistence() bool              { return true }
func (p testPresence) GetUsername() string               { return p.username }
func (p testPresence) GetStatus() string                 { return "" }
func (p testPresence) GetReason() runtime.PresenceReason { return runtime.PresenceReasonUnknown }

// testMatchData is a client message frame.
type testMatchData struct {
	testPresence
	opCode int64
	data   []byte
}

func (d testMatchData) GetOpCode() int64      { return d.opCode }
func (d testMatchData) GetData() []byte       { return d.data }
func (d testMatchData) GetReliable() bool     { return true }
func (d testMatchData) GetReceiveTime() int64 { return 0 }

// fakeArchive records archived matches in memory.
type fakeArchive struct {
	saved map[string][]*domain.MatchState
}

func (f *fakeArchive) SaveMatch(ctx context.Context, ownerID string, match *domain.MatchState) error {
	if f.saved == nil {
		f.saved = make(map[string][]*domain.MatchState)
	}
	f.saved[ownerID] = append(f.saved[ownerID], match)
	return nil
}

func (f *fakeArchive) ListMatches(ctx context.Context, ownerID string, limit int) ([]*domain.MatchState, error) {
	return f.saved[ownerID], nil
}

func message(userID string, opCode int64, payload interface{}) testMatchData {
	var data []byte
	if payload != nil {
		data, _ = json.Marshal(payload)
	}
	return testMatchData{
		testPresence: testPresence{userID: userID, username: "name-" + userID},
		opCode:       opCode,
		data:         data,
	}
}

// shortGameDefaults is a one-leg race from 40 so tests can finish quickly.
func shortGameDefaults() config.GameDefaults {
	return config.GameDefaults{
		DefaultPreset: "test_40",
		Presets: []config.Preset{
			{ID: "test_40", StartingScore: 40, CheckIn: "Open", CheckOut: "Double", Mode: "LEGS", LegsToWin: 1, SetsToWin: 1},
		},
	}
}

func newTestMatch(t *testing.T, players int, userIDs ...string) (*matchHandler, *MatchState, *mockDispatcher, *fakeArchive) {
	t.Helper()
	mh := &matchHandler{}
	dispatcher := &mockDispatcher{}
	archive := &fakeArchive{}

	raw, tickRate, label := mh.MatchInit(context.Background(), noopLogger{}, nil, nil, map[string]interface{}{"players": players})
	if tickRate != 1 || label == "" {
		t.Fatalf("MatchInit = (tickRate=%d, label=%q)", tickRate, label)
	}
	state := raw.(*MatchState)
	state.Defaults = shortGameDefaults()
	state.Archive = archive

	presences := make([]runtime.Presence, len(userIDs))
	for i, id := range userIDs {
		presences[i] = testPresence{userID: id, username: "name-" + id}
	}
	state = mh.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, state, presences).(*MatchState)
	return mh, state, dispatcher, archive
}

func loop(mh *matchHandler, state *MatchState, dispatcher *mockDispatcher, tick int64, messages ...testMatchData) *MatchState {
	data := make([]runtime.MatchData, len(messages))
	for i, m := range messages {
		data[i] = m
	}
	return mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, tick, state, data).(*MatchState)
}

func TestMatchLabelContents(t *testing.T) {
	state := &MatchState{Seats: []string{"u1", "", ""}}

	labelBytes, err := marshalLabel(state)
	if err != nil {
		t.Fatalf("marshalLabel: %v", err)
	}

	var label map[string]interface{}
	if err := json.Unmarshal(labelBytes, &label); err != nil {
		t.Fatalf("label is not JSON: %v", err)
	}
	if label["game"] != "x01" || label["state"] != "lobby" {
		t.Errorf("label = %v, want game x01 in lobby", label)
	}
	if open, ok := label["open"].(float64); !ok || open != 2 {
		t.Errorf("label open = %v, want 2", label["open"])
	}
}

func TestSeatCount(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]interface{}
		want   int
	}{
		{"missing", nil, DefaultSeatCount},
		{"float from json", map[string]interface{}{"players": float64(4)}, 4},
		{"int", map[string]interface{}{"players": 1}, 1},
		{"string", map[string]interface{}{"players": "4"}, 4},
		{"unsupported size", map[string]interface{}{"players": 3}, DefaultSeatCount},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := seatCount(test.params); got != test.want {
				t.Fatalf("seatCount() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestMatchJoinAssignsSeatsAndOwner(t *testing.T) {
	_, state, dispatcher, _ := newTestMatch(t, 2, "u1", "u2")

	if state.Seats[0] != "u1" || state.Seats[1] != "u2" {
		t.Fatalf("seats = %v, want join order", state.Seats)
	}
	if state.OwnerSeat != 0 {
		t.Errorf("owner seat = %d, want 0", state.OwnerSeat)
	}
	if dispatcher.labelUpdates == 0 || !dispatcher.sent(OpPlayerJoined) {
		t.Errorf("expected a label update and a lobby broadcast after join")
	}

	var lobby LobbyMessage
	if err := json.Unmarshal(dispatcher.lastPayload(OpPlayerJoined), &lobby); err != nil {
		t.Fatalf("lobby payload: %v", err)
	}
	if len(lobby.Roster) != 2 || lobby.OpenSeats != 0 || !lobby.Roster[0].IsOwner {
		t.Errorf("lobby = %+v, want a full table owned by seat 0", lobby)
	}
}

func TestMatchJoinAttempt(t *testing.T) {
	mh, state, _, _ := newTestMatch(t, 2, "u1", "u2")

	if _, allowed, _ := mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 0, state, testPresence{userID: "u3"}, nil); allowed {
		t.Error("a full lobby must reject newcomers")
	}
	if _, allowed, _ := mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 0, state, testPresence{userID: "u1"}, nil); !allowed {
		t.Error("a seated player must be allowed to reconnect")
	}

	// Start the match, free no seats, and verify newcomers stay locked out
	// while the seated player can still return.
	dispatcher := &mockDispatcher{}
	state = loop(mh, state, dispatcher, 1, message("u1", OpStartMatch, nil))
	if state.Match == nil {
		t.Fatal("owner start request should begin the match")
	}
	if _, allowed, _ := mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 0, state, testPresence{userID: "u3"}, nil); allowed {
		t.Error("a started match must reject newcomers")
	}
	if _, allowed, _ := mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 0, state, testPresence{userID: "u2"}, nil); !allowed {
		t.Error("a contestant must be allowed back into a started match")
	}
}

func TestStartMatchRequiresOwner(t *testing.T) {
	mh, state, dispatcher, _ := newTestMatch(t, 2, "u1", "u2")

	state = loop(mh, state, dispatcher, 1, message("u2", OpStartMatch, nil))
	if state.Match != nil {
		t.Fatal("non-owner must not be able to start the match")
	}
	if !dispatcher.sent(OpError) {
		t.Fatal("expected a targeted error for the rejected starter")
	}

	state = loop(mh, state, dispatcher, 2, message("u1", OpStartMatch, nil))
	if state.Match == nil {
		t.Fatal("owner start request should begin the match")
	}
	if !dispatcher.sent(OpMatchStarted) || !dispatcher.sent(OpStateSnapshot) {
		t.Errorf("opcodes = %v, want match_started and a snapshot", dispatcher.opCodes)
	}
	if state.Match.Config.StartingScore != 40 {
		t.Errorf("starting score = %d, want the default preset's 40", state.Match.Config.StartingScore)
	}
}

func TestStartMatchDoublesTeams(t *testing.T) {
	mh, state, dispatcher, _ := newTestMatch(t, 4, "u1", "u2", "u3", "u4")

	request := StartMatchRequest{
		Doubles: true,
		Teams:   map[string]string{"u1": "red", "u2": "red", "u3": "blue", "u4": "blue"},
	}
	state = loop(mh, state, dispatcher, 1, message("u1", OpStartMatch, request))
	if state.Match == nil {
		t.Fatal("doubles start request should begin the match")
	}
	if !state.Match.Config.Doubles || len(state.Match.Teams) != 2 {
		t.Errorf("match = doubles=%t teams=%v, want a 2v2", state.Match.Config.Doubles, state.Match.Teams)
	}
}

func TestSubmitTurnRejectsOutOfTurnSender(t *testing.T) {
	mh, state, dispatcher, _ := newTestMatch(t, 2, "u1", "u2")
	state = loop(mh, state, dispatcher, 1, message("u1", OpStartMatch, nil))

	before := state.Match
	state = loop(mh, state, dispatcher, 2, message("u2", OpSubmitTurn, SubmitTurnRequest{Score: 20, Darts: 3}))
	if state.Match != before {
		t.Fatal("an out-of-turn visit must not advance the match")
	}

	var errMsg ErrorMessage
	if err := json.Unmarshal(dispatcher.lastPayload(OpError), &errMsg); err != nil {
		t.Fatalf("error payload: %v", err)
	}
	if errMsg.Code != 403 {
		t.Errorf("error code = %d, want 403", errMsg.Code)
	}
	last := dispatcher.recipients[len(dispatcher.recipients)-1]
	if len(last) != 1 || last[0].GetUserId() != "u2" {
		t.Errorf("error recipients = %v, want only u2", last)
	}
}

func TestSubmitTurnFinishArchivesAndStampsClock(t *testing.T) {
	mh, state, dispatcher, archive := newTestMatch(t, 2, "u1", "u2")
	state = loop(mh, state, dispatcher, 10, message("u1", OpStartMatch, nil))

	state = loop(mh, state, dispatcher, 73, message("u1", OpSubmitTurn, SubmitTurnRequest{Score: 40, Darts: 1}))
	if state.Match.Status != domain.StatusFinished {
		t.Fatalf("status = %q, want finished", state.Match.Status)
	}
	if !dispatcher.sent(OpTurnRecorded) || !dispatcher.sent(OpLegWon) || !dispatcher.sent(OpMatchEnded) {
		t.Errorf("opcodes = %v, want turn, leg and match end frames", dispatcher.opCodes)
	}
	if state.Match.ElapsedSeconds != 63 {
		t.Errorf("elapsed = %d, want 63 (one tick per second)", state.Match.ElapsedSeconds)
	}

	for _, userID := range []string{"u1", "u2"} {
		if got := len(archive.saved[userID]); got != 1 {
			t.Errorf("archived matches for %s = %d, want 1", userID, got)
		}
	}

	// A second finished-state submission must not re-archive or restamp.
	state = loop(mh, state, dispatcher, 74, message("u1", OpSubmitTurn, SubmitTurnRequest{Score: 20, Darts: 3}))
	if got := len(archive.saved["u1"]); got != 1 {
		t.Errorf("archived matches after no-op = %d, want still 1", got)
	}
	if state.Match.ElapsedSeconds != 63 {
		t.Errorf("elapsed after no-op = %d, want unchanged 63", state.Match.ElapsedSeconds)
	}
}

func TestUndoReopensFinishedMatch(t *testing.T) {
	mh, state, dispatcher, _ := newTestMatch(t, 2, "u1", "u2")
	state = loop(mh, state, dispatcher, 1, message("u1", OpStartMatch, nil))
	state = loop(mh, state, dispatcher, 2, message("u1", OpSubmitTurn, SubmitTurnRequest{Score: 40, Darts: 1}))

	if !state.Archived {
		t.Fatal("finished match should have been archived")
	}

	state = loop(mh, state, dispatcher, 3, message("u2", OpUndoTurn, nil))
	if state.Match.Status != domain.StatusActive {
		t.Fatalf("status after undo = %q, want active", state.Match.Status)
	}
	if state.Archived {
		t.Error("reopened match must be archivable again")
	}
	if !dispatcher.sent(OpTurnUndone) {
		t.Errorf("opcodes = %v, want a turn_undone frame", dispatcher.opCodes)
	}
}

func TestSwitchStarterBeforeFirstThrow(t *testing.T) {
	mh, state, dispatcher, _ := newTestMatch(t, 2, "u1", "u2")
	state = loop(mh, state, dispatcher, 1, message("u1", OpStartMatch, nil))

	state = loop(mh, state, dispatcher, 2, message("u1", OpSwitchStarter, nil))
	if state.Match.CurrentIndex != 1 {
		t.Fatalf("current index = %d, want 1 after switch", state.Match.CurrentIndex)
	}
	if !dispatcher.sent(OpStarterSwitched) {
		t.Errorf("opcodes = %v, want a starter_switched frame", dispatcher.opCodes)
	}
}

func TestBotAutoFillAndPlay(t *testing.T) {
	mh, state, dispatcher, archive := newTestMatch(t, 2, "u1")
	state.BotsEnabled = true
	state.BotMinDelay = 1
	state.BotMaxDelay = 1
	state.BotAutoFillDelay = 2

	state = loop(mh, state, dispatcher, 1) // lone player starts the auto-fill timer
	if state.Seats[1] != "" {
		t.Fatal("the bot must not arrive before the delay elapses")
	}
	state = loop(mh, state, dispatcher, 3)
	if !bot.IsBot(state.Seats[1]) {
		t.Fatalf("seats = %v, want a bot opponent in seat 1", state.Seats)
	}
	if state.OwnerSeat != 0 {
		t.Fatalf("owner seat = %d, a bot must never own the match", state.OwnerSeat)
	}

	state = loop(mh, state, dispatcher, 4, message("u1", OpStartMatch, nil))
	if state.Match == nil {
		t.Fatal("start request should begin the match")
	}

	// The human throws, then the bot acts after its delay.
	state = loop(mh, state, dispatcher, 5, message("u1", OpSubmitTurn, SubmitTurnRequest{Score: 20, Darts: 3}))
	state = loop(mh, state, dispatcher, 6)

	turns := 0
	for _, leg := range state.Match.CompletedLegs {
		turns += len(leg.History)
	}
	if state.Match.Status != domain.StatusFinished {
		turns += len(state.Match.CurrentLeg.History)
	}
	if turns != 2 {
		t.Fatalf("recorded turns = %d, want the human's and the bot's", turns)
	}

	if state.Match.Status == domain.StatusFinished {
		if len(archive.saved[state.Seats[1]]) != 0 {
			t.Error("bots must not accumulate match history")
		}
		if len(archive.saved["u1"]) != 1 {
			t.Error("the human's history must be archived")
		}
	} else if got := state.Match.CurrentContestant().ID; got != "u1" {
		t.Errorf("current contestant = %s, want rotation back to u1", got)
	}
}

func TestHumanDisplacesLobbyBot(t *testing.T) {
	mh, state, dispatcher, _ := newTestMatch(t, 2, "u1")
	state.BotsEnabled = true
	state.BotAutoFillDelay = 1
	state = loop(mh, state, dispatcher, 1)
	state = loop(mh, state, dispatcher, 3)
	botID := state.Seats[1]
	if !bot.IsBot(botID) {
		t.Fatalf("seats = %v, want a bot in seat 1", state.Seats)
	}

	if _, allowed, _ := mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 4, state, testPresence{userID: "u2"}, nil); !allowed {
		t.Fatal("a human must be allowed to take a lobby bot's seat")
	}
	state = mh.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 4, state,
		[]runtime.Presence{testPresence{userID: "u2", username: "name-u2"}}).(*MatchState)
	if state.Seats[1] != "u2" {
		t.Fatalf("seats = %v, want u2 replacing the bot", state.Seats)
	}
	if len(state.Bots) != 0 {
		t.Error("the displaced bot's agent must be dropped")
	}
}

func TestMatchLeaveKeepsSeatsDuringPlay(t *testing.T) {
	mh, state, dispatcher, _ := newTestMatch(t, 2, "u1", "u2")
	state = loop(mh, state, dispatcher, 1, message("u1", OpStartMatch, nil))

	state = mh.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state,
		[]runtime.Presence{testPresence{userID: "u2"}}).(*MatchState)
	if state.Seats[1] != "u2" {
		t.Errorf("seat = %q, want u2 reserved for reconnect", state.Seats[1])
	}

	// Last player out terminates the match.
	result := mh.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state,
		[]runtime.Presence{testPresence{userID: "u1"}})
	if result != nil {
		t.Error("an empty match must terminate")
	}
}
