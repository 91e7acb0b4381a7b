package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"chdbatch/internal/archive"
	"chdbatch/internal/batch"
	"chdbatch/internal/chdman"
	"chdbatch/internal/config"
	"chdbatch/internal/console"
	"chdbatch/internal/fileset"
	"chdbatch/internal/input"
	"chdbatch/internal/logging"
	"chdbatch/internal/menu"
)

// Options wires a Session to its terminal and configuration.
type Options struct {
	Config *config.Config
	// In is the shared buffered stdin used for both keys and lines.
	In     *bufio.Reader
	Keys   console.KeySource
	Screen *console.Screen
	Logger *slog.Logger
	// AppDir is where chdman is expected and the default import directory.
	AppDir string
	// OpenLog overrides the platform viewer used for the log file.
	OpenLog func(path string) error
}

// Session owns all mutable state of one interactive run: the located tool,
// the imported file set and the operation table.
type Session struct {
	cfg     *config.Config
	screen  *console.Screen
	keys    console.KeySource
	input   *input.Resolver
	logger  *slog.Logger
	appDir  string
	logFile logging.LogFile
	lock    *instanceLock

	ops        []batch.Operation
	files      *fileset.Set
	classifier *fileset.Classifier
	toolPath   string
	runner     *batch.Runner
}

// New assembles a Session.
func New(opts Options) (*Session, error) {
	if opts.Config == nil || opts.In == nil || opts.Keys == nil || opts.Screen == nil {
		return nil, errors.New("session requires config, input, keys, and screen")
	}
	logger := logging.NewComponentLogger(opts.Logger, "session")
	s := &Session{
		cfg:     opts.Config,
		screen:  opts.Screen,
		keys:    opts.Keys,
		logger:  logger,
		appDir:  opts.AppDir,
		logFile: logging.LogFile{Path: opts.Config.LogPath(), Opener: opts.OpenLog},
		lock:    newInstanceLock(opts.Config.LockPath()),
		ops:     batch.Operations(opts.Config.Tool.PSPHunkSize),
		files:   fileset.New(),
	}
	commands := logging.Commands{File: s.logFile, Out: s.screen.Out(), Pause: s.screen.Pause}
	s.input = input.New(opts.In, s.screen.Out(), commands)

	extractor := &archive.Extractor{Logger: opts.Logger}
	if opts.Config.Batch.ExtractProgress {
		extractor.Progress = s.screen.Out()
	}
	s.classifier = &fileset.Classifier{Extractor: extractor, Logger: opts.Logger, Warn: s.screen.Warning}
	return s, nil
}

// Files exposes the current import.
func (s *Session) Files() *fileset.Set {
	return s.files
}

// ToolPath is the located chdman executable, empty until Run found it.
func (s *Session) ToolPath() string {
	return s.toolPath
}

// Run drives the session until the user exits, input ends or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	if err := s.cfg.EnsureDirectories(); err != nil {
		return err
	}
	if err := s.lock.acquire(); err != nil {
		if errors.Is(err, ErrAlreadyRunning) {
			s.screen.Error("Another chdbatch session is already running.")
			s.farewell()
		}
		return err
	}
	defer func() {
		if err := s.lock.release(); err != nil {
			s.logger.Warn("failed to release session lock", logging.Error(err))
		}
	}()

	s.logger.Info("session started", logging.String("app_dir", s.appDir))
	if !s.locateTool() {
		s.farewell()
		return nil
	}

	client, err := chdman.New(s.toolPath,
		chdman.WithOutput(s.screen.Out(), s.screen.Out()),
		chdman.WithLogger(s.logger),
	)
	if err != nil {
		return err
	}
	s.runner = &batch.Runner{Tool: client, Out: s.screen, Logger: s.logger}

	root := menu.New("Main Menu")
	root.Root = true
	root.Refresh = s.refreshRoot
	_, err = root.Run(s.screen, s.keys, func(item menu.Item) bool {
		if ctx.Err() != nil {
			return false
		}
		return s.dispatch(ctx, item)
	})
	s.farewell()
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, console.ErrInterrupted) {
		return fmt.Errorf("read key: %w", err)
	}
	s.logger.Info("session finished")
	return nil
}

// dispatch performs the action bound to a confirmed menu item. It returns
// false when the root loop should end.
func (s *Session) dispatch(ctx context.Context, item menu.Item) bool {
	action := item.Action
	switch action.Kind {
	case menu.ActionNone:
	case menu.ActionImport:
		s.importFiles(ctx)
	case menu.ActionRunBatch:
		s.runBatch(ctx, action.Operation)
	case menu.ActionSetFlag:
		s.logger.Debug("setting chosen",
			logging.Int("flag", int(action.Flag)),
			logging.Bool("value", action.Value),
		)
	case menu.ActionLogMenu:
		s.logMenu()
	case menu.ActionOpenLog:
		if err := s.logFile.Open(); err != nil {
			s.screen.Error(fmt.Sprintf("%q could not be opened: %v", filepath.Base(s.logFile.Path), err))
		}
	case menu.ActionDeleteLog:
		if err := s.logFile.Delete(); err != nil {
			s.screen.Error(err.Error())
			break
		}
		s.screen.Writef("Deleted %q", filepath.Base(s.logFile.Path))
		s.screen.Pause()
	case menu.ActionQuit:
		return false
	}
	return true
}

func (s *Session) refreshRoot(m *menu.Menu) {
	var desc strings.Builder
	fmt.Fprintf(&desc, "Found %s at: %q\n\n", config.ToolBinary(), s.toolPath)
	desc.WriteString(fileTable(s.files))
	m.Description = desc.String()

	m.Items = m.Items[:0]
	m.Add("Import files", menu.Action{Kind: menu.ActionImport},
		"Scan files or directories. ZIP archives are extracted next to themselves.")
	for _, op := range s.ops {
		if !s.files.Any(op.Sources...) {
			continue
		}
		m.Add(op.Label, menu.Action{Kind: menu.ActionRunBatch, Operation: op.Kind}, op.Description)
	}
	if s.logFile.Exists() {
		m.Add("Log file", menu.Action{Kind: menu.ActionLogMenu}, "Open or delete "+s.logFile.Path)
	}
	m.Add("Exit", menu.Action{Kind: menu.ActionQuit}, "")
}

// locateTool finds chdman at its default location or asks for a path once.
func (s *Session) locateTool() bool {
	candidate := chdman.DefaultPath(s.cfg, s.appDir)
	if chdman.Validate(candidate) == nil {
		s.toolPath = candidate
		s.logger.Info("chdman located", logging.String("path", candidate))
		return true
	}

	binary := config.ToolBinary()
	s.screen.Header("Enter Application Path", true)
	s.screen.Writef("%s was not found at %q.", binary, candidate)
	s.screen.Write("")
	s.screen.Writef("Please enter a valid path to %s", binary)

	entered, _ := s.input.Line("File", "")
	err := chdman.Validate(entered)
	switch {
	case err == nil:
		s.toolPath = strings.TrimSpace(strings.ReplaceAll(entered, `"`, ""))
		s.logger.Info("chdman located", logging.String("path", s.toolPath), logging.Bool("prompted", true))
		return true
	case errors.Is(err, chdman.ErrValidation):
		s.screen.Error(fmt.Sprintf("%s not found: the selected file is not named %s.", binary, binary))
	default:
		s.screen.Error(fmt.Sprintf("%s not found: %q does not exist.", binary, entered))
	}
	return false
}

func (s *Session) importFiles(ctx context.Context) {
	dir := s.cfg.Paths.ImportDir
	if dir == "" {
		dir = s.appDir
	}
	s.screen.Header("Import Files", true)
	s.screen.Write("Enter files or directories to import, separated by spaces.")
	s.screen.Write("Quote paths that contain spaces.")
	s.screen.Writef("Leave blank to scan %q.", dir)

	paths, ok := s.input.Paths(input.Default(dir))
	if !ok {
		return
	}
	set, warnings := s.classifier.Classify(ctx, paths)
	s.files = set

	s.screen.Write("")
	s.screen.Writef("Imported %d file(s) with %d warning(s).", set.Total(), len(warnings))
	s.screen.Write(fileTable(set))
	s.screen.Pause()
}

func (s *Session) runBatch(ctx context.Context, kind batch.Kind) {
	op, ok := batch.Lookup(s.ops, kind)
	if !ok {
		s.screen.Error(fmt.Sprintf("Unknown operation %s.", kind))
		return
	}
	files := op.Inputs(s.files)
	if len(files) == 0 {
		s.screen.Error("There are no files to process.")
		return
	}

	settings, err := batch.Configure(s, op, batch.Settings{DeleteSource: s.cfg.Batch.DeleteSourceDefault})
	if err != nil {
		s.logger.Warn("batch configuration aborted", logging.Error(err))
		return
	}

	s.screen.Header(op.Title, true)
	result := s.runner.Execute(ctx, op, settings, files)
	s.files.Clear(op.Consumes()...)

	s.screen.Write(strings.Repeat("-", s.screen.Width()))
	s.screen.Success("Done!")
	s.screen.Write("")
	s.screen.Writef("%d file(s) failed to process.", len(result.Failures))
	if len(result.Failures) > 0 {
		s.screen.Write(failureTable(result))
	}
	s.screen.Pause()
}

// Confirm asks a yes/no question through a two-item menu.
func (s *Session) Confirm(q batch.Question) (bool, error) {
	m := menu.New(q.Title)
	m.Description = q.Text
	m.Add("No", menu.Action{Kind: menu.ActionSetFlag, Flag: q.Flag, Value: false}, "")
	m.Add("Yes", menu.Action{Kind: menu.ActionSetFlag, Flag: q.Flag, Value: true}, "")
	if q.Default {
		m.Selected = 1
	}
	item, err := m.Run(s.screen, s.keys, func(item menu.Item) bool {
		return s.dispatch(context.Background(), item)
	})
	if err != nil {
		return false, err
	}
	return item.Action.Value, nil
}

func (s *Session) logMenu() {
	m := menu.New("Log File")
	m.Description = s.logFile.Path
	if s.logFile.Exists() {
		m.Add("Open log file", menu.Action{Kind: menu.ActionOpenLog}, "")
		m.Add("Delete log file", menu.Action{Kind: menu.ActionDeleteLog}, "")
	}
	m.AddReturn("")
	if _, err := m.Run(s.screen, s.keys, func(item menu.Item) bool {
		return s.dispatch(context.Background(), item)
	}); err != nil {
		s.logger.Debug("log menu closed", logging.Error(err))
	}
}

func (s *Session) farewell() {
	s.screen.Header("Goodbye", true)
	s.screen.Write("Thanks for using chdbatch.")
}
