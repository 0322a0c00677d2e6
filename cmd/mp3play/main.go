// Copyright 2017 Hajime Hoshi
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command mp3play decodes an MPEG Layer III file and either plays it
// through the system's audio output or writes it out as WAV/raw PCM.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx := context.Background()

	app := &cli.Command{
		Name:  "mp3play",
		Usage: "decode and play an MPEG Layer III file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write decoded audio here instead of playing it (\"-\" for stdout)",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "with --output, write headerless PCM instead of a WAV file",
			},
			&cli.BoolFlag{
				Name:  "strict-crc",
				Usage: "reject frames whose CRC checksum does not match",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log decode-level events (resyncs, skipped frames, decode errors) to stderr",
			},
			&cli.IntFlag{
				Name:  "resync-limit",
				Usage: "max bytes scanned while resynchronizing after a decode error",
			},
		},
		ArgsUsage: "<file.mp3>",
		Action:    run,
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "mp3play: %v\n", err)
		os.Exit(1)
	}
}
