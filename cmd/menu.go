package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/tferdous17/tango/internal/tango"
	"github.com/tferdous17/tango/store"
	"github.com/tferdous17/tango/utils"
)

/*
Menus read whitespace separated integers, one op code followed by its
arguments:

	rbtree
	1 <id> <val>        insert
	2 <id> <val>        contains
	3 <id> <val>        remove
	4 <id> <key> <id>   join, kept under the first id
	5 <id> <key>        split
	6 <id>              show

	tango (after the universe size n)
	1 <key>             search
	2                   show
*/

type tokens struct {
	sc *bufio.Scanner
}

func newTokens(r io.Reader) *tokens {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokens{sc: sc}
}

// ints reads the next n words as integers. Running out of input is reported
// as utils.ErrMissingArgs.
func (t *tokens) ints(n int) ([]int, error) {
	words := make([]string, 0, n)
	for len(words) < n && t.sc.Scan() {
		words = append(words, t.sc.Text())
	}
	return utils.ParseArgs(words, n)
}

func (t *tokens) op() (int, bool) {
	args, err := t.ints(1)
	if err != nil {
		return -1, !errors.Is(err, utils.ErrMissingArgs)
	}
	return args[0], true
}

func rbtreeMenu(r io.Reader, w io.Writer, registry *store.Registry) error {
	in := newTokens(r)
	for {
		op, ok := in.op()
		if !ok {
			return in.sc.Err()
		}

		var err error
		switch op {
		case 1:
			var args []int
			if args, err = in.ints(2); err == nil {
				registry.Insert(args[0], args[1])
			}
		case 2:
			var args []int
			if args, err = in.ints(2); err == nil {
				fmt.Fprintln(w, boolWord(registry.Contains(args[0], args[1])))
			}
		case 3:
			var args []int
			if args, err = in.ints(2); err == nil {
				err = registry.Remove(args[0], args[1])
			}
		case 4:
			var args []int
			if args, err = in.ints(3); err == nil {
				if err = registry.Join(args[0], args[1], args[2]); err == nil {
					fmt.Fprint(w, registry.Show(args[0]))
				}
			}
		case 5:
			var args []int
			var view store.SplitView
			if args, err = in.ints(2); err == nil {
				if view, err = registry.Split(args[0], args[1]); err == nil {
					fmt.Fprintf(w, "L:\n%sx:\n%sR:\n%s", view.Left, view.Pivot, view.Right)
				}
			}
		case 6:
			var args []int
			if args, err = in.ints(1); err == nil {
				fmt.Fprint(w, registry.Show(args[0]))
			}
		default:
			err = utils.ErrInvalidOperation
		}

		switch {
		case err == nil:
		case errors.Is(err, utils.ErrMissingArgs):
			return in.sc.Err()
		case errors.Is(err, utils.ErrInvalidID):
			fmt.Fprintln(w, "Invalid ID")
		case errors.Is(err, utils.ErrInvalidOperation):
			fmt.Fprintln(w, "Invalid Operation")
		default:
			fmt.Fprintln(w, err)
		}
	}
}

func tangoMenu(in *tokens, w io.Writer, tree *tango.Tree) error {
	for {
		op, ok := in.op()
		if !ok {
			return in.sc.Err()
		}

		switch op {
		case 1:
			args, err := in.ints(1)
			if errors.Is(err, utils.ErrMissingArgs) {
				return in.sc.Err()
			}
			if err != nil {
				fmt.Fprintln(w, err)
				continue
			}
			tree.Search(args[0])
		case 2:
			fmt.Fprint(w, tree.String())
		default:
			fmt.Fprintln(w, "Invalid operation")
		}
	}
}

func boolWord(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
