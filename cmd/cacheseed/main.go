/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mikeb26/bcc-swiss/bcc"
	"github.com/mikeb26/bcc-swiss/internal/config"
	"github.com/mikeb26/bcc-swiss/internal/httpcache"
	"github.com/mikeb26/bcc-swiss/internal/logger"
	"github.com/mikeb26/bcc-swiss/store"
	"github.com/mikeb26/bcc-swiss/uschess"
)

// this program exists just to seed the http cache with the uscf ratings of
// every saved competitor and of the entrants of any bcc event ids given as
// arguments

const pause = 2 * time.Second // avoid pegging uschess.org

func main() {
	ctx := context.Background()

	log := logger.NewConsole(os.Getenv("SWISS_LOG_LEVEL"))
	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal().Err(err).Msg("cacheseed: bad configuration")
	}
	st, err := store.Open(ctx, cfg.StoreDir, cfg.S3Bucket, log)
	if err != nil {
		log.Fatal().Err(err).Msg("cacheseed: failed to open store")
	}
	httpClient := httpcache.NewCachedHttpClient(ctx, cfg.S3Bucket,
		cfg.HttpCacheTTL, log)
	bccClient := bcc.NewClient(httpClient, log)
	uscfClient := uschess.NewClient(httpClient, log)

	seen := make(map[uschess.MemID]bool)
	var memIDs []uschess.MemID
	add := func(id uschess.MemID) {
		if !seen[id] {
			seen[id] = true
			memIDs = append(memIDs, id)
		}
	}

	tids, err := st.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cacheseed: failed to list tournaments")
	}
	for _, tid := range tids {
		s, err := st.Load(ctx, tid)
		if err != nil {
			// best effort
			continue
		}
		for _, r := range s.Registry {
			if id, ok := uschess.RegistrantMemID(r); ok {
				add(id)
			}
		}
	}

	for _, arg := range os.Args[1:] {
		eventID, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			log.Warn().Str("arg", arg).Msg("cacheseed: not an event id")
			continue
		}
		regs, err := bccClient.GetRegistrants(ctx, eventID, "")
		if err != nil {
			// best effort
			continue
		}
		for _, r := range regs {
			if id, ok := uschess.RegistrantMemID(r); ok {
				add(id)
			}
		}
		fmt.Printf("seeded ev:%v\n", eventID)
	}

	for _, memID := range memIDs {
		player, err := uscfClient.FetchPlayer(ctx, memID)
		time.Sleep(pause)
		if err != nil {
			// best effort
			continue
		}

		fmt.Printf("seeded %v player data\n", player.Name)
	}
}
