package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
)

var answerCmd = &cobra.Command{
	Use:         "answer [ids...]",
	Short:       "Tick or untick statements without opening the questionnaire",
	Annotations: map[string]string{runtimeAnnotation: runtimeCLI},
	Long: `Tick (or with --false untick) the statements with the given numbers.
Numbers may be separated by spaces or commas, and ranges like 3-7 are accepted.

  lsq answer 1 5 9-12
  lsq answer --false 7
  lsq answer --all | --none | --random`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		none, _ := cmd.Flags().GetBool("none")
		random, _ := cmd.Flags().GetBool("random")
		untick, _ := cmd.Flags().GetBool("false")

		bulk := 0
		for _, b := range []bool{all, none, random} {
			if b {
				bulk++
			}
		}
		if bulk > 1 {
			return errors.New("--all, --none and --random are mutually exclusive")
		}
		if bulk == 1 && len(args) > 0 {
			return errors.New("item numbers cannot be combined with --all, --none or --random")
		}
		if bulk == 0 && len(args) == 0 {
			return errors.New("give item numbers, or one of --all, --none, --random")
		}

		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		rt := runtimeFrom(cmd)

		st := rt.session(cmd.Context())
		if bulk == 1 && !st.Loaded() {
			return fmt.Errorf("cannot answer every item: %w", st.LoadErr)
		}

		switch {
		case all:
			st.Answers.SetAll(true)
		case none:
			st.Answers.SetAll(false)
		case random:
			st.Randomize()
		default:
			for _, id := range ids {
				st.Answers.Set(id, !untick)
			}
		}

		snap := st.Snapshot()
		fmt.Fprintf(cmd.OutOrStdout(), "Ticked %d / %d\n", snap.Ticked, snap.Total())
		return nil
	},
}

// parseIDs accepts "3", "3,4" and "3-7" forms and returns sorted unique
// identifiers within the questionnaire range.
func parseIDs(args []string) ([]int, error) {
	seen := make(map[int]bool)
	for _, arg := range args {
		for _, tok := range strings.Split(arg, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			lo, hi, err := parseRange(tok)
			if err != nil {
				return nil, err
			}
			for id := lo; id <= hi; id++ {
				seen[id] = true
			}
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func parseRange(tok string) (int, int, error) {
	from, to, isRange := strings.Cut(tok, "-")
	lo, err := parseID(from)
	if err != nil {
		return 0, 0, err
	}
	if !isRange {
		return lo, lo, nil
	}
	hi, err := parseID(to)
	if err != nil {
		return 0, 0, err
	}
	if hi < lo {
		return 0, 0, fmt.Errorf("invalid range %q", tok)
	}
	return lo, hi, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid item number %q", s)
	}
	if id < questionnaire.MinItemID || id > questionnaire.MaxItemID {
		return 0, fmt.Errorf("item %d is outside %d..%d", id, questionnaire.MinItemID, questionnaire.MaxItemID)
	}
	return id, nil
}

func init() {
	f := answerCmd.Flags()
	f.Bool("false", false, "Untick the given items instead of ticking them")
	f.Bool("all", false, "Tick every statement")
	f.Bool("none", false, "Untick every statement")
	f.Bool("random", false, "Tick a random selection (demo)")
}
