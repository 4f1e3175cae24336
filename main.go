package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/getsentry/sentry-go"
	"github.com/urfave/cli/v2"

	"github.com/forestvpn/ledctl/actions"
	"github.com/forestvpn/ledctl/config"
	"github.com/forestvpn/ledctl/utils"
)

var (
	// Dsn is a Data Source Name for Sentry. It is assigned during the build with ldflags.
	//
	// See https://docs.sentry.io/product/sentry-basics/dsn-explainer/ for more information.
	Dsn string
	// appVersion is assigned during the build with ldflags.
	appVersion string
)

const commandUsage = "<ip> <port> <c1> <c2> <c3> <c4> <c5> <c6> <c7>"

func main() {
	err := config.Init()

	if err != nil {
		log.Fatal(err)
	}

	err = sentry.Init(sentry.ClientOptions{
		Dsn:     Dsn,
		Release: appVersion,
	})

	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}

	cli.VersionPrinter = func(cCtx *cli.Context) {
		fmt.Println(cCtx.App.Version)
	}

	err = newApp().Run(os.Args)

	if err != nil {
		sentry.CaptureException(err)
		color.Red(err.Error())
	}

	sentry.Flush(2 * time.Second)

	if err != nil {
		os.Exit(1)
	}
}

func newApp() *cli.App {
	// configPath is the ini file with client settings.
	var configPath string
	// sendEncoded makes the client transmit the encoded message instead of the probe sentinel.
	var sendEncoded bool
	// reply is what the listen command answers every probe with.
	var reply string
	var cfg config.Config

	send := func(cCtx *cli.Context) error {
		args := cCtx.Args().Slice()

		if len(args) < 2 {
			cli.ShowSubcommandHelp(cCtx)
			return fmt.Errorf("usage: %s", commandUsage)
		}

		port, err := actions.ParsePort(args[1])

		if err != nil {
			return err
		}

		cmd, err := actions.ParseCommand(args[2:])

		if err != nil {
			cli.ShowSubcommandHelp(cCtx)
			return err
		}

		return actions.Send(cCtx.Context, cCtx.App.Writer, cfg, args[0], port, cmd, sendEncoded)
	}

	return &cli.App{
		Version:              appVersion,
		EnableBashCompletion: true,
		Suggest:              true,
		Name:                 "ledctl",
		Usage:                "probe an LED matrix server over TCP",
		ArgsUsage:            commandUsage,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"V"},
				Usage:       "make commands more talkative",
				Value:       false,
				Destination: &utils.Verbose,
			},
			&cli.BoolFlag{
				Name:        "send-encoded",
				Usage:       "transmit the encoded command instead of the 0xFF probe",
				Value:       false,
				Destination: &sendEncoded,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "load client settings from `FILE`",
				Value:       config.ConfigFile,
				Destination: &configPath,
			},
		},
		Before: func(cCtx *cli.Context) error {
			var err error
			cfg, err = config.Load(configPath)
			return err
		},
		Action: send,
		Commands: []*cli.Command{
			{
				Name:      "send",
				Usage:     "encode a command and probe the server with it",
				ArgsUsage: commandUsage,
				Action:    send,
			},
			{
				Name:      "encode",
				Usage:     "print the message a command encodes to",
				ArgsUsage: "<c1> <c2> <c3> <c4> <c5> <c6> <c7>",
				Action: func(cCtx *cli.Context) error {
					cmd, err := actions.ParseCommand(cCtx.Args().Slice())

					if err != nil {
						cli.ShowSubcommandHelp(cCtx)
						return err
					}

					return actions.Encode(cCtx.App.Writer, cfg.Layout, cmd)
				},
			},
			{
				Name:      "decode",
				Usage:     "print the command fields packed into a message",
				ArgsUsage: "<value>",
				Action: func(cCtx *cli.Context) error {
					if cCtx.NArg() != 1 {
						cli.ShowSubcommandHelp(cCtx)
						return fmt.Errorf("exactly one message value required, got %d", cCtx.NArg())
					}

					return actions.Decode(cCtx.App.Writer, cfg.Layout, cCtx.Args().First())
				},
			},
			{
				Name:      "listen",
				Usage:     "run a probe sink that prints what it receives",
				ArgsUsage: "<port>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "reply",
						Aliases:     []string{"r"},
						Usage:       "answer every probe with `TEXT`",
						Value:       "OK",
						Destination: &reply,
					},
				},
				Action: func(cCtx *cli.Context) error {
					port, err := actions.ParsePort(cCtx.Args().First())

					if err != nil {
						cli.ShowSubcommandHelp(cCtx)
						return err
					}

					ctx, stop := signal.NotifyContext(cCtx.Context, os.Interrupt)
					defer stop()

					return actions.Listen(ctx, cCtx.App.Writer, port, cfg.ReadSize, reply)
				},
			},
			{
				Name:  "last",
				Usage: "show the last successful run",
				Action: func(cCtx *cli.Context) error {
					return actions.ShowLast(cCtx.App.Writer, config.SessionFile)
				},
			},
			{
				Name:  "version",
				Usage: "show the version of ledctl",
				Action: func(cCtx *cli.Context) error {
					fmt.Fprintf(cCtx.App.Writer, "ledctl %s\n", appVersion)
					return nil
				},
			},
		},
	}
}
