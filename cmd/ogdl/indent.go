package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/scott-cotton/cli"
)

func indent(cfg *IndentConfig, cc *cli.Context, args []string) error {
	args, err := cfg.IndentCmd.Parse(cc, args)
	if err != nil {
		cfg.IndentCmd.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	n := 2
	if len(args) > 0 {
		if n, err = strconv.Atoi(args[0]); err != nil || n < 0 {
			return fmt.Errorf("%w: bad indentation %q", cli.ErrUsage, args[0])
		}
	}
	w := bufio.NewWriter(cc.Out)
	if len(args) > 1 {
		w.WriteString(args[1] + "\n")
	}
	pad := strings.Repeat(" ", n)
	r := bufio.NewReader(cc.In)
	bol := true
	for {
		c, err := r.ReadByte()
		if err != nil {
			break
		}
		if c == '\r' {
			continue
		}
		if bol {
			w.WriteString(pad)
			bol = false
		}
		w.WriteByte(c)
		bol = c == '\n'
	}
	return w.Flush()
}
