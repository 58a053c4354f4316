package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	tea "github.com/charmbracelet/bubbletea"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
	"go.uber.org/zap"

	"github.com/itohio/gogurdy/pkg/config"
	"github.com/itohio/gogurdy/pkg/display"
	"github.com/itohio/gogurdy/pkg/gurdy"
	"github.com/itohio/gogurdy/pkg/keybox"
	"github.com/itohio/gogurdy/pkg/logging"
	"github.com/itohio/gogurdy/pkg/store"
	"github.com/itohio/gogurdy/pkg/voice"
)

func main() {
	var (
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		midiFlag   = flag.String("midi", "", "MIDI output port override (substring match)")
		logFlag    = flag.String("log", "gurdytui.log", "Log file (the terminal is taken by the UI)")
	)
	flag.Parse()

	if err := run(*configFlag, *midiFlag, *logFlag); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, midiPort, logPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fault.Wrap(err, fmsg.With("failed to load configuration"))
	}
	if midiPort != "" {
		cfg.MIDI.OutPort = midiPort
	}
	if cfg.Log.File == "" {
		cfg.Log.File = logPath
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer midi.CloseDriver()

	// The terminal has no physical keybox; keys go through the mock
	mock := keybox.NewMock(&cfg.Mock)
	if err := mock.Connect(); err != nil {
		return fault.Wrap(err, fmsg.With("failed to connect to mocked keybox"))
	}
	defer mock.Close()

	st, err := store.Open(cfg.EX.EEPROMPath)
	if err != nil {
		return err
	}
	defer st.Close()

	// Without a MIDI port the instrument still runs; the UI shows why it is silent
	var warning error
	send, out, err := voice.OpenOut(cfg.MIDI.OutPort)
	if err != nil {
		logger.Warn("midi output unavailable", zap.Error(err))
		warning = fault.Wrap(err, fmsg.WithDesc("midi output unavailable",
			"No MIDI output port found, notes are not sent"))
	} else {
		logger.Info("midi output", zap.String("port", out.String()))
		defer out.Close()
	}

	bank := keybox.NewBank()
	go bank.Run(mock.Frames())

	disp := display.New()
	frames := make(chan string, 1)
	disp.OnChange(func(frame string) {
		publishFrame(frames, frame)
	})

	inst := gurdy.New(cfg, bank, st, send, disp, gurdy.WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if err := inst.Run(ctx); err != nil {
			logger.Error("control loop stopped", zap.Error(err))
		}
	}()

	m := newModel(cfg, mock, frames, disp.Frame(), warning)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()

	cancel()
	<-loopDone

	return err
}

// publishFrame replaces any frame the UI has not picked up yet.
func publishFrame(frames chan string, frame string) {
	for {
		select {
		case frames <- frame:
			return
		default:
		}
		select {
		case <-frames:
		default:
		}
	}
}
