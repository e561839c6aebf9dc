package main

import (
	"context"
	"fmt"
	"go_fast_split/constants"
	"go_fast_split/joiner"
	"go_fast_split/progress"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/akamensky/argparse"
	"github.com/google/uuid"
)

func main() {
	args := argparse.NewParser("join", constants.Title)

	manifest := args.String("m", "manifest", &argparse.Options{Required: false, Help: "Checksum manifest listing parts in order"})
	output := args.String("o", "output", &argparse.Options{Required: true, Help: "Joined file path"})
	parts := args.StringList("p", "part", &argparse.Options{Required: false, Help: "Part file. Repeat in join order"})

	err := args.Parse(os.Args)

	if err != nil {
		fmt.Print(args.Usage(err))
		os.Exit(1)
	}

	if (*manifest == "") == (len(*parts) == 0) {
		fmt.Println("Provide either a manifest or a list of parts")
		os.Exit(1)
	}

	j := joiner.New(progress.Funcs{
		OnStart: func(_ uuid.UUID, out string) {
			fmt.Println("Joining into", out)
		},
		OnProgress: func(ev progress.Event) {
			fmt.Println("Appended part", ev.Part, "of", ev.Total, "-", ev.File, progress.FormatSize(ev.Written))
		},
		OnMessage: func(msg progress.Message) {
			fmt.Println(msg.Level.String()+":", msg.Text())
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	begin := time.Now()
	var total int64
	outName := filepath.Clean(*output)
	if *manifest != "" {
		total, err = j.JoinManifest(ctx, filepath.Clean(*manifest), outName)
	} else {
		total, err = j.Join(ctx, *parts, outName)
	}
	stop()

	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
	fmt.Println("Joined", progress.FormatSize(total), "in", time.Since(begin))
}
