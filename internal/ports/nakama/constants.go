package nakama

const (
	// RpcFindMatch is the Nakama RPC id clients call to find or create a match
	// with open seats.
	RpcFindMatch = "find_match"

	// RpcMatchHistory is the Nakama RPC id clients call to list their own
	// archived matches.
	RpcMatchHistory = "match_history"

	// MatchNameX01 is the authoritative match handler name registered with Nakama.
	MatchNameX01 = "x01_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartMatch     int64 = 1
	OpSubmitTurn     int64 = 2
	OpUndoTurn       int64 = 3
	OpSwitchStarter  int64 = 4
	OpReorderDoubles int64 = 5

	// Server -> Client events
	OpPlayerJoined    int64 = 101
	OpPlayerLeft      int64 = 102
	OpMatchStarted    int64 = 103
	OpTurnRecorded    int64 = 104
	OpLegWon          int64 = 105
	OpSetWon          int64 = 106
	OpMatchEnded      int64 = 107
	OpTurnUndone      int64 = 108
	OpStarterSwitched int64 = 109
	OpOrderChanged    int64 = 110
	OpStateSnapshot   int64 = 111
	OpError           int64 = 112
)
