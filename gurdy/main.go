package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
	"go.uber.org/zap"

	"github.com/itohio/gogurdy/pkg/config"
	"github.com/itohio/gogurdy/pkg/display"
	"github.com/itohio/gogurdy/pkg/gurdy"
	"github.com/itohio/gogurdy/pkg/keybox"
	"github.com/itohio/gogurdy/pkg/logging"
	"github.com/itohio/gogurdy/pkg/scope"
	"github.com/itohio/gogurdy/pkg/store"
	"github.com/itohio/gogurdy/pkg/voice"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use mocked keybox instead of serial port")
		midiFlag   = flag.String("midi", "", "MIDI output port override (substring match)")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override serial port if provided via command line
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}
	if *midiFlag != "" {
		cfg.MIDI.OutPort = *midiFlag
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()
	defer midi.CloseDriver()

	// Create Fyne application
	application := app.NewWithID("com.itohio.gogurdy")

	// Create main window
	window := application.NewWindow("Gurdy")
	window.Resize(fyne.NewSize(900, 600))
	window.CenterOnScreen()

	state := &appState{
		cfg:        cfg,
		configPath: *configFlag,
		log:        logger,
		window:     window,
		useMock:    *mockFlag,
		disp:       display.New(),
	}

	// Screen of the instrument
	screen := widget.NewLabel("")
	screen.TextStyle = fyne.TextStyle{Monospace: true}
	state.screen = screen
	state.disp.OnChange(func(frame string) {
		UpdateWidgetOnMainThread(func() {
			screen.SetText(frame)
		})
	})

	toolbar := createToolbar(state)
	panel := createKeyPanel(state)

	// Pin activity of the keybox
	state.trace = scope.NewTrace(scopeWindow)
	state.scopeWidget = scope.New(state.trace, scopeRows(cfg))

	content := container.NewBorder(
		toolbar,
		panel,
		container.NewCenter(screen),
		nil,
		state.scopeWidget,
	)

	window.SetContent(content)
	window.SetOnClosed(func() {
		closeSession(state.session)
		state.session = nil
	})
	window.ShowAndRun()
}

const (
	scopeWindow    = 5 * time.Second
	updateInterval = 33 * time.Millisecond // ~30 FPS
)

// session tracks everything opened by Connect for graceful shutdown.
type session struct {
	device   keybox.Device
	store    *store.File
	midiOut  drivers.Out
	cancel   context.CancelFunc
	loopDone chan struct{} // Closed when the control loop exits
	bankDone chan struct{} // Closed when the pin bank stops reading frames
	uiDone   chan struct{} // Closed when the scope refresher exits
}

// appState holds the application state.
type appState struct {
	cfg        *config.Config
	configPath string
	log        *zap.Logger
	window     fyne.Window
	useMock    bool

	disp        *display.Text
	screen      *widget.Label
	trace       *scope.Trace
	scopeWidget *scope.ScopeWidget
	connectBtn  *widget.Button
	keyButtons  []*widget.Button
	holdX       *widget.Check

	mock    *keybox.Mock // Set while connected to a mocked keybox
	session *session     // Current session (nil if not connected)
}

// createToolbar creates the application toolbar with Connect and Settings buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	// Connect button with icon
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	// Settings button with icon
	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	// Buttons on the left, nothing else
	return container.NewBorder(nil, nil, container.NewHBox(connectBtn, settingsBtn), nil, nil)
}

// closeSession stops the control loop and closes the keybox, EEPROM image and
// MIDI port. Waits for the goroutines to finish.
func closeSession(s *session) {
	if s == nil {
		return
	}

	// Stop the control loop first so it silences the voices while MIDI is open
	s.cancel()
	<-s.loopDone

	// Close device - this will close the frames channel
	if s.device != nil {
		s.device.Close()
	}
	<-s.bankDone
	<-s.uiDone

	if s.store != nil {
		s.store.Close()
	}
	if s.midiOut != nil {
		s.midiOut.Close()
	}
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.session != nil {
		closeSession(state.session)
		state.session = nil
		state.mock = nil
		setKeyButtonsEnabled(state, false)
		state.log.Info("disconnected")
		return
	}

	s, err := openSession(state)
	if err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	state.session = s
	setKeyButtonsEnabled(state, state.mock != nil)
}

// openSession connects the keybox, opens the EEPROM image and MIDI port and
// starts the control loop.
func openSession(state *appState) (*session, error) {
	cfg := state.cfg

	var device keybox.Device
	if state.useMock {
		mock := keybox.NewMock(&cfg.Mock)
		state.mock = mock
		device = mock
		state.log.Info("using mocked keybox")
	} else {
		device = keybox.New(cfg.Serial.Port, cfg.Serial.BaudRate, keybox.DefaultBufferSize, state.log)
	}

	if err := device.Connect(); err != nil {
		state.mock = nil
		if state.useMock {
			return nil, fmt.Errorf("failed to connect to mocked keybox: %w", err)
		}
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Serial.Port, err)
	}

	st, err := store.Open(cfg.EX.EEPROMPath)
	if err != nil {
		device.Close()
		state.mock = nil
		return nil, err
	}

	// Without a MIDI port the instrument still runs; notes are just not sent
	send, out, err := voice.OpenOut(cfg.MIDI.OutPort)
	if err != nil {
		state.log.Warn("midi output unavailable", zap.Error(err))
	} else {
		state.log.Info("midi output", zap.String("port", out.String()))
	}

	// Frames feed both the pins read by the instrument and the scope
	bank := keybox.NewBank()
	bankDone := make(chan struct{})
	go func() {
		defer close(bankDone)
		for f := range device.Frames() {
			bank.Set(f)
			state.trace.Push(f)
		}
	}()

	// Redraw the scope until the frames stop
	uiDone := make(chan struct{})
	go func() {
		defer close(uiDone)
		ticker := time.NewTicker(updateInterval)
		defer ticker.Stop()
		for {
			select {
			case <-bankDone:
				return
			case <-ticker.C:
				UpdateWidgetOnMainThread(state.scopeWidget.Refresh)
			}
		}
	}()

	inst := gurdy.New(cfg, bank, st, send, state.disp, gurdy.WithLogger(state.log))

	ctx, cancel := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if err := inst.Run(ctx); err != nil {
			state.log.Error("control loop stopped", zap.Error(err))
		}
	}()

	state.log.Info("connected", zap.Bool("mock", state.useMock), zap.String("port", cfg.Serial.Port))

	return &session{
		device:   device,
		store:    st,
		midiOut:  out,
		cancel:   cancel,
		loopDone: loopDone,
		bankDone: bankDone,
		uiDone:   uiDone,
	}, nil
}
