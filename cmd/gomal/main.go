package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/gomal"
	"github.com/peterh/liner"
)

const (
	prompt     = "user> "
	promptCont = "  ... "
)

var (
	expr      = flag.String("e", "", "evaluate `expr` and print the result")
	noprelude = flag.Bool("noprelude", false, "do not load the bundled library")
	history   = flag.String("history", "", "history `file` for the repl (default $HOME/.gomal_history)")
)

func newEnv(out io.Writer) (*gomal.Env, error) {
	env := gomal.NewRootEnv(gomal.NewBuiltins(out))
	if !*noprelude {
		if err := gomal.LoadLib(env); err != nil {
			return nil, err
		}
	}
	return env, nil
}

// rep reads src, evaluates its first form and returns the printed result
// or the error message.
func rep(env *gomal.Env, src string) string {
	forms, err := gomal.Read(src)
	if err != nil {
		return "error: " + err.Error()
	}
	form := gomal.Nil()
	if len(forms) > 0 {
		form = forms[0]
	}
	ret, err := gomal.Eval(env, form)
	if err != nil {
		return "error: " + err.Error()
	}
	return ret.String()
}

// readEntry prompts until the accumulated lines no longer end inside an
// open list.
func readEntry(ln *liner.State) (string, error) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = promptCont
		}
		line, err := ln.Prompt(p)
		if err != nil {
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, err := gomal.Read(src); !gomal.IsIncomplete(err) {
			return src, nil
		}
	}
}

func historyPath() string {
	if *history != "" {
		return *history
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gomal_history")
}

func repl() error {
	env, err := newEnv(os.Stdout)
	if err != nil {
		return err
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	hist := historyPath()
	if f, err := os.Open(hist); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if hist == "" {
			return
		}
		if f, err := os.Create(hist); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		src, err := readEntry(ln)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		fmt.Println(rep(env, src))
	}
}

func run(r io.Reader, out io.Writer) error {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	forms, err := gomal.Read(string(b))
	if err != nil {
		return err
	}
	env, err := newEnv(out)
	if err != nil {
		return err
	}
	_, err = env.Eval(forms...)
	return err
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("gomal: ")
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	if *expr != "" {
		env, err := newEnv(os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(rep(env, *expr))
		return
	}

	var f *os.File
	var err error

	if flag.NArg() == 0 {
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			if err := repl(); err != nil {
				log.Fatal(err)
			}
			return
		}
		f = os.Stdin
	}

	if flag.NArg() == 1 {
		f, err = os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	if err := run(f, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
