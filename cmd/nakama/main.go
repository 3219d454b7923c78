package main

import (
	"context"
	"database/sql"

	"github.com/floriangiral/Bougnat-darts-counter/internal/ports/nakama"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule proxies Nakama initialization to the nakama adapter package.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	return nakama.InitModule(ctx, logger, db, nk, initializer)
}

// main is unused: this package is loaded by Nakama as a plugin, but a main
// function is required for `go build` outside -buildmode=plugin.
func main() {}
