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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/urfave/cli/v3"

	mp3 "github.com/layeriii/mp3dec"
)

var errNoInputFile = errors.New("expected exactly one argument: the file to decode")

func run(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("%w: got %d", errNoInputFile, cmd.NArg())
	}

	path := cmd.Args().First()
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var opts []mp3.Option
	if cmd.Bool("strict-crc") {
		opts = append(opts, mp3.WithStrictCRC())
	}
	if cmd.Bool("verbose") {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, mp3.WithLogger(logger))
	}
	if n := cmd.Int("resync-limit"); n > 0 {
		opts = append(opts, mp3.WithResyncLimit(int(n)))
	}

	d, err := mp3.NewDecoder(f, opts...)
	if err != nil {
		return fmt.Errorf("constructing decoder: %w", err)
	}

	if out := cmd.String("output"); out != "" {
		return writeToFile(d, out, cmd.Bool("raw"))
	}
	return play(d)
}

func writeToFile(d *mp3.Decoder, path string, raw bool) error {
	var w io.Writer
	if path == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	pcm := mp3.NewPCMReader(d)
	if raw {
		_, err := io.Copy(w, pcm)
		return err
	}

	data, err := io.ReadAll(pcm)
	if err != nil {
		return err
	}
	return writeWAV(w, data, d.SampleRate())
}

func play(d *mp3.Decoder) error {
	pcm := mp3.NewPCMReader(d)

	c, ready, err := oto.NewContext(d.SampleRate(), 2, 2)
	if err != nil {
		return fmt.Errorf("opening audio output: %w", err)
	}
	<-ready

	p := c.NewPlayer(pcm)
	defer p.Close()
	p.Play()

	for p.IsPlaying() {
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}
