package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/pgn4/internal/pgn4/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := pgn4(); err != nil {
		logrus.Fatal(err)
	}
}

func pgn4() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
