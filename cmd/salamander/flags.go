package main

import (
	"fmt"
	"strconv"
)

// options holds the parsed command-line configuration from spec.md §6:
// "-L <path> set left-panel path; -R <path> set right-panel path; -A
// <path> set active-panel path; -AJ <path> same but interpreting
// user-hot-path syntax; -C <file> load configuration from file; -I <0..3>
// choose main-window icon index; -T <text> set title-bar prefix (max 64
// chars); -O force single-instance behavior; -P <0|1|2> choose active
// panel (0=last, 1=left, 2=right); -run_notepad <file> open a file in
// notepad (post-install hook)."
type options struct {
	leftPath       string
	rightPath      string
	activePath     string
	activeHotPath  bool
	configFile     string
	iconIndex      int
	titlePrefix    string
	forceSingle    bool
	activePanel    int
	runNotepadFile string
}

// parseArgs implements spec.md §6's hand-rolled flag scanner. It is not
// POSIX getopt-compatible by design: Open Salamander's flags are
// single-dash, some are multi-letter (-AJ, -run_notepad), and -I/-P take a
// constrained small integer rather than an arbitrary string, none of
// which github.com/spf13/pflag models as anything but a pile of
// special-case StringVar/IntVar calls. A dedicated scanner reads more
// plainly than that pile would.
func parseArgs(args []string) (options, error) {
	var opts options
	opts.iconIndex = -1
	opts.activePanel = 0

	next := func(i int, flag string) (string, int, error) {
		if i+1 >= len(args) {
			return "", i, fmt.Errorf("missing value for %s", flag)
		}
		return args[i+1], i + 1, nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-L":
			v, j, err := next(i, arg)
			if err != nil {
				return opts, err
			}
			opts.leftPath, i = v, j
		case "-R":
			v, j, err := next(i, arg)
			if err != nil {
				return opts, err
			}
			opts.rightPath, i = v, j
		case "-A":
			v, j, err := next(i, arg)
			if err != nil {
				return opts, err
			}
			opts.activePath, opts.activeHotPath, i = v, false, j
		case "-AJ":
			v, j, err := next(i, arg)
			if err != nil {
				return opts, err
			}
			opts.activePath, opts.activeHotPath, i = v, true, j
		case "-C":
			v, j, err := next(i, arg)
			if err != nil {
				return opts, err
			}
			opts.configFile, i = v, j
		case "-I":
			v, j, err := next(i, arg)
			if err != nil {
				return opts, err
			}
			index, err := parseBoundedInt(v, 0, 3)
			if err != nil {
				return opts, fmt.Errorf("invalid -I value %q: %w", v, err)
			}
			opts.iconIndex, i = index, j
		case "-T":
			v, j, err := next(i, arg)
			if err != nil {
				return opts, err
			}
			if len(v) > 64 {
				return opts, fmt.Errorf("-T value exceeds 64 characters")
			}
			opts.titlePrefix, i = v, j
		case "-O":
			opts.forceSingle = true
		case "-P":
			v, j, err := next(i, arg)
			if err != nil {
				return opts, err
			}
			panelChoice, err := parseBoundedInt(v, 0, 2)
			if err != nil {
				return opts, fmt.Errorf("invalid -P value %q: %w", v, err)
			}
			opts.activePanel, i = panelChoice, j
		case "-run_notepad":
			v, j, err := next(i, arg)
			if err != nil {
				return opts, err
			}
			opts.runNotepadFile, i = v, j
		default:
			return opts, fmt.Errorf("unrecognized argument: %s", arg)
		}
	}

	return opts, nil
}

func parseBoundedInt(s string, min, max int) (int, error) {
	value, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if value < min || value > max {
		return 0, fmt.Errorf("must be between %d and %d", min, max)
	}
	return value, nil
}
