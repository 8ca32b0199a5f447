package ui

import (
	"context"
	"fmt"
	"os"

	"clickchess/src"
	"clickchess/src/base"
	"clickchess/src/engine/libchess"
	"clickchess/src/logx"
	clic "clickchess/ui/cli"
	"clickchess/ui/gui"
	"clickchess/ui/gui/gbase"
	"clickchess/ui/gui/gbase/gconf"
	"clickchess/ui/gui/gctx"
	"clickchess/ui/gui/gdraw"
	"clickchess/ui/tui"

	"github.com/urfave/cli/v3"
)

const logfile string = "clickchess.log"

func GetLogger(file *os.File, c *cli.Command, conf *gconf.Config) *logx.Logx {
	level := conf.LogLevel
	if c.IsSet("level") {
		level = c.String("level")
	}
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(level),
		c.Bool("debug") || conf.Debug,
		c.Bool("console"),
	)
	l.InitLogger(file)
	return l
}

// settings shared by every front end
type setup struct {
	conf        *gconf.Config
	logger      *logx.Logx
	engine      *libchess.Engine
	orientation base.Orientation
	file        *os.File
}

func (s *setup) Close() {
	s.engine.Close()
	_ = s.logger.Sync()
	s.file.Close()
}

func newSetup(c *cli.Command) (*setup, error) {
	conf, err := gconf.NewGUIConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("error read config: %w", err)
	}
	if c.IsSet("size") {
		conf.Size = int(c.Int("size"))
	}
	if c.IsSet("flip") {
		conf.Flipped = c.Bool("flip")
	}
	if c.IsSet("theme") {
		conf.Theme = c.String("theme")
	}
	if conf.Size < gbase.MinViewport {
		conf.Size = gbase.MinViewport
	}

	file, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("error open logfile: %w", err)
	}
	logger := GetLogger(file, c, conf)

	eng, err := libchess.New(c.String("fen"))
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("error start game: %w", err)
	}

	o := base.Normal
	if conf.Flipped {
		o = base.Flipped
	}
	logger.Debugf("config %s: %+v", conf.Path(), *conf)
	return &setup{conf: conf, logger: logger, engine: eng, orientation: o, file: file}, nil
}

func saveConfig(c *cli.Command, st *setup, s *src.Session) {
	if !c.Bool("save") {
		return
	}
	st.conf.Flipped = s.Orientation() == base.Flipped
	if err := st.conf.Save(); err != nil {
		fmt.Printf("error save config: %v\n", err)
	}
}

func RunGUI(ctx context.Context, c *cli.Command) error {
	st, err := newSetup(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer st.Close()

	theme := gbase.PaletteFromString(st.conf.Theme)
	canvas := gdraw.NewCanvas(st.conf.Size, theme, st.conf.ShowCoords, st.logger)
	session := src.NewSession(st.engine, canvas, st.logger, st.conf.Size, st.orientation)
	g := gui.NewGUI(gctx.NewGUIGameContext(session, canvas, st.conf, st.logger))
	err = g.Run()
	st.conf.Size = session.Viewport()
	saveConfig(c, st, session)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error GUI: %v", err), 1)
	}
	return nil
}

func RunTUI(ctx context.Context, c *cli.Command) error {
	st, err := newSetup(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer st.Close()

	screen, err := tui.NewScreen()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	r := tui.NewScreenRenderer(screen, gbase.PaletteFromString(st.conf.Theme))
	session := src.NewSession(st.engine, r, st.logger, tui.Viewport, st.orientation)
	t := tui.NewTUI(screen, session, r, st.logger)
	err = t.Run(ctx)
	t.Shutdown()
	saveConfig(c, st, session)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error TUI: %v", err), 1)
	}
	fmt.Println(session.History().MovesAsPGN())
	return nil
}

func RunCLI(ctx context.Context, c *cli.Command) error {
	st, err := newSetup(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer st.Close()

	clic.EnableANSI()
	board := clic.NewBoard(os.Stdout, !clic.IsTerminal(os.Stdout))
	session := src.NewSession(st.engine, board, st.logger, st.conf.Size, st.orientation)
	cl := clic.NewCLI(session, os.Stdin, os.Stdout)
	err = cl.RunLineMode()
	saveConfig(c, st, session)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error clickchess: %v", err), 1)
	}
	return nil
}

func RunClickChess() error {
	ff := &cli.StringFlag{
		Name:  "fen",
		Usage: "start position in FEN format",
	}
	flf := &cli.BoolFlag{
		Name:  "flip",
		Usage: "show the board from black's side",
	}
	sf := &cli.IntFlag{
		Name:  "size",
		Usage: "board size in pixels (click coordinates in cli mode)",
	}
	tf := &cli.StringFlag{
		Name:  "theme",
		Usage: "light or dark",
	}
	conff := &cli.StringFlag{
		Name:  "config",
		Usage: "path to clickchess.json or clickchess.yaml",
	}
	svf := &cli.BoolFlag{
		Name:  "save",
		Usage: "write the settings back to the config file on exit",
	}
	df := &cli.BoolFlag{
		Name:    "debug",
		Aliases: []string{"d"},
		Usage:   "enable debug mod",
	}
	lf := &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Usage:   "logger level (debug, info, warn, error)",
	}
	cf := &cli.BoolFlag{
		Name:    "console",
		Aliases: []string{"c"},
		Usage:   "console logger encoding",
	}
	// root flags are inherited by the subcommands
	flags := []cli.Flag{ff, flf, sf, tf, conff, svf, df, lf, cf}

	return (&cli.Command{
		Name:  "clickchess",
		Usage: "click-to-move chess board",
		Flags: flags,
		Commands: []*cli.Command{
			{
				Name:   "gui",
				Usage:  "play in a window (default)",
				Action: RunGUI,
			},
			{
				Name:   "tui",
				Usage:  "play in the terminal with the mouse",
				Action: RunTUI,
			},
			{
				Name:   "cli",
				Usage:  "type clicks line by line",
				Action: RunCLI,
			},
		},
		Action: RunGUI,
	}).Run(context.Background(), os.Args)
}
