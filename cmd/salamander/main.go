package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"time"

	"github.com/altap-salamander/core/pkg/activation"
	"github.com/altap-salamander/core/pkg/config"
	"github.com/altap-salamander/core/pkg/diskio"
	"github.com/altap-salamander/core/pkg/engine"
	"github.com/altap-salamander/core/pkg/idle"
	"github.com/altap-salamander/core/pkg/logging"
	"github.com/altap-salamander/core/pkg/path"
	"github.com/altap-salamander/core/pkg/panel"
	"github.com/altap-salamander/core/pkg/pluginfs"
	"github.com/altap-salamander/core/pkg/salamander"
)

var mainLogger = logging.RootLogger.Sublogger("main")

// dialogBuffer bounds the number of unacknowledged operation dialogs the
// scheduler will queue before blocking producers, matching the modest
// depths pkg/operation's own tests use.
const dialogBuffer = 16

// idlePassInterval drives RunIdlePass in place of the idle transitions a
// real Win32 message pump would supply; this core engine has no GUI loop
// of its own to hang the dispatch off of, so it simulates one.
const idlePassInterval = 100 * time.Millisecond

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fail(fmt.Errorf("invalid arguments: %w", err))
	}

	// -run_notepad is a one-shot post-install hook per spec.md §6: open a
	// file in notepad and exit, bypassing the rest of startup entirely.
	if opts.runNotepadFile != "" {
		runNotepad(opts.runNotepadFile)
		return
	}

	if err := run(opts); err != nil {
		fail(err)
	}
}

func runNotepad(file string) {
	cmd := exec.Command("notepad.exe", file)
	if err := cmd.Run(); err != nil {
		fail(fmt.Errorf("unable to launch notepad: %w", err))
	}
}

func run(opts options) error {
	// ConfigurationRootTemplate names each major.minor's own product key
	// ("Software\Altap\Salamander 4.0"); ProbeAndMigrate probes siblings
	// of that key for an older version to migrate forward from, so the
	// registry root it's given is the template's fixed vendor/product
	// prefix, and the "%d.%d" portion is the version-subkey name it
	// searches for.
	baseKey := strings.TrimSuffix(salamander.ConfigurationRootTemplate, ` %d.%d`)
	versionName := fmt.Sprintf("%d.%d", salamander.VersionMajor, salamander.VersionMinor)

	root, err := config.OpenRoot(baseKey)
	if err != nil {
		return fmt.Errorf("unable to open configuration root: %w", err)
	}
	versionKey, err := config.ProbeAndMigrate(root, versionName)
	if err != nil {
		root.Close()
		return fmt.Errorf("unable to probe configuration: %w", err)
	}
	cfg := config.New(versionKey)
	defer cfg.Close()

	if opts.configFile != "" {
		overlay, err := loadConfigOverlay(opts.configFile)
		if err != nil {
			return err
		}
		if err := applyConfigOverlay(cfg, overlay); err != nil {
			return fmt.Errorf("unable to import configuration file: %w", err)
		}
	}

	if opts.forceSingle {
		if err := cfg.SetSingleInstance(true); err != nil {
			mainLogger.Warn(fmt.Errorf("unable to persist -O single-instance flag: %w", err))
		}
	}

	transport := activation.NewTransport()
	singleInstance := opts.forceSingle || cfg.SingleInstance()

	associations := path.NewArchiveAssociations(".zip", ".7z", ".rar", ".tar", ".gz")
	engineFS := diskio.NewFileSystem()
	panels := panel.NewEngine(engineFS, pluginfs.NewRegistry(), associations)

	ctx := engine.NewEngineContext(panels, diskio.NewFileOps(), cfg, idle.Handlers{}, dialogBuffer)

	// In single-instance mode, the first launch wins the pipe and keeps
	// running; every later launch finds the pipe already taken, hands its
	// paths off to whoever holds it, and exits immediately per spec.md §6.
	var server *engine.ActivationServer
	if singleInstance {
		server, err = engine.StartActivationServer(ctx, transport)
		if err != nil {
			handed, herr := tryHandOffToRunningInstance(transport, opts)
			if herr != nil {
				mainLogger.Warn(fmt.Errorf("single-instance activation attempt failed: %w", herr))
			} else if handed {
				return nil
			}
			return fmt.Errorf("unable to listen on single-instance pipe and unable to hand off to a running instance: %w", err)
		}
		defer server.Close()
	}

	left := panel.New()
	right := panel.New()
	engine.RestorePanelPath(panels, cfg, config.Left, left)
	engine.RestorePanelPath(panels, cfg, config.Right, right)

	applyStartupPaths(panels, left, right, opts)

	runIdleLoop(ctx)

	if err := engine.SavePanelPath(cfg, config.Left, left); err != nil {
		mainLogger.Warn(fmt.Errorf("unable to persist left panel path: %w", err))
	}
	if err := engine.SavePanelPath(cfg, config.Right, right); err != nil {
		mainLogger.Warn(fmt.Errorf("unable to persist right panel path: %w", err))
	}

	return nil
}

// tryHandOffToRunningInstance sends an activation request to an
// already-running instance's single-instance pipe. It reports handed=true
// only if the request was actually delivered; per spec.md §6 the caller
// still exits either way once single-instance mode is in effect, but a
// delivery failure is worth logging since it usually means the registered
// flag is stale (the prior instance crashed without clearing it).
func tryHandOffToRunningInstance(transport activation.PipeTransport, opts options) (bool, error) {
	req := activation.NewRequest(time.Now(), opts.leftPath, opts.rightPath)
	if err := engine.SendActivation(transport, req, 2*time.Second); err != nil {
		return false, err
	}
	return true, nil
}

// applyStartupPaths layers the -L/-R/-A/-AJ command-line paths over
// whatever RestorePanelPath already recovered from the registry. The -A/-AJ
// path goes to the right panel when -P is 2 and to the left panel
// otherwise (including -P 0); no panel is made active and no saved active
// side is read.
//
// -AJ is documented in spec.md §6 as "same [as -A] but interpreting
// user-hot-path syntax": Open Salamander's hot paths are user-defined
// named directory bookmarks, a feature no [MODULE] in this core engine
// implements (there is no bookmark/hot-path store here), so -AJ and -A
// resolve identically — both are passed straight to Engine.ChangePath,
// which only understands the path syntax path.Parse defines.
func applyStartupPaths(panels *panel.Engine, left, right *panel.Panel, opts options) {
	if opts.leftPath != "" {
		if result := panels.ChangePath(left, opts.leftPath, panel.ChangePathOptions{}); result.Err != nil {
			mainLogger.Warn(fmt.Errorf("-L %s: %w", opts.leftPath, result.Err))
		}
	}
	if opts.rightPath != "" {
		if result := panels.ChangePath(right, opts.rightPath, panel.ChangePathOptions{}); result.Err != nil {
			mainLogger.Warn(fmt.Errorf("-R %s: %w", opts.rightPath, result.Err))
		}
	}
	if opts.activePath != "" {
		target := left
		if opts.activePanel == 2 {
			target = right
		}
		if result := panels.ChangePath(target, opts.activePath, panel.ChangePathOptions{}); result.Err != nil {
			mainLogger.Warn(fmt.Errorf("-A/-AJ %s: %w", opts.activePath, result.Err))
		}
	}
}

// runIdleLoop stands in for the idle transitions of a Win32 message pump:
// it ticks at a fixed interval, delivering any plugin-FS timer fires queued
// on background goroutines and then running one deferred-work pass, until
// a termination signal arrives, at which point it begins critical shutdown
// so any in-flight bulk operation winds down cooperatively before main
// returns.
func runIdleLoop(ctx *engine.EngineContext) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, terminationSignals...)
	defer signal.Stop(signals)

	ticker := time.NewTicker(idlePassInterval)
	defer ticker.Stop()

	for {
		select {
		case <-signals:
			ctx.BeginCriticalShutdown()
			return
		case <-ticker.C:
			ctx.Panels.Plugins.PumpTimers()
			ctx.Idle.RunIdlePass()
		}
	}
}
