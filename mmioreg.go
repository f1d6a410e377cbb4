// Copyright 2022 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// mmio-reg reads and writes 32-bit MMIO registers in the memory BARs of
// a PCIe device through sysfs.
//
// Only 32-bit registers are supported, 64-bit registers have to be
// accessed as two 32-bit halves.
package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"
	"system-transparency.org/mmioreg/mmlog"
	"system-transparency.org/mmioreg/opts"
	"system-transparency.org/mmioreg/pci"
	"system-transparency.org/mmioreg/regfmt"
)

const (
	// Author is the author.
	Author = "the System Transparency Authors"
	// HelpText is the command line help.
	HelpText = "A simple tool to access a PCIe device's MMIO registers.\n" +
		"NOTE: Only 32-bit registers are supported. A 64-bit register has to be handled as two 32-bit registers."

	bdfHelp      = `The BDF of the PCIe device to access, e.g. "0000:01:00.0" or "01:00.0".`
	barHelp      = "The index of the Base Address Register."
	readHelp     = "Read COUNT registers (NOT bytes!) beginning at hex OFFSET. COUNT follows as argument and defaults to 1."
	writeHelp    = "Write hex VALUE to the register at hex OFFSET. VALUE follows as argument."
	argHelp      = "COUNT for --read, VALUE for --write."
	outputHelp   = "Output format of read registers: table, json or yaml."
	logLevelHelp = "Log level: e 'error', w 'warn', i 'info', d 'debug'."
	klogHelp     = "Log to the kernel log instead of stderr."
)

//nolint:gochecknoglobals
var version = "1.0"

type cliArgs struct {
	bdf       string
	bar       string
	read      string
	write     string
	arg       string
	output    string
	logLevel  string
	klog      bool
	sysfsRoot string
}

type config struct {
	req       opts.Request
	format    regfmt.Format
	logLevel  mmlog.LogLevel
	klog      bool
	sysfsRoot string
}

func newApp(a *cliArgs) *kingpin.Application {
	app := kingpin.New("mmio-reg", HelpText)
	app.Version(version).Author(Author)
	app.UsageTemplate(kingpin.CompactUsageTemplate)
	app.HelpFlag.Short('h')
	app.VersionFlag.Short('v')

	app.Flag("bdf", bdfHelp).Short('s').Required().PlaceHolder("ADDRESS").StringVar(&a.bdf)
	app.Flag("bar", barHelp).Short('b').Default("0").PlaceHolder("INDEX").StringVar(&a.bar)
	app.Flag("read", readHelp).Short('r').PlaceHolder("OFFSET").StringVar(&a.read)
	app.Flag("write", writeHelp).Short('w').PlaceHolder("OFFSET").StringVar(&a.write)
	app.Arg("COUNT|VALUE", argHelp).StringVar(&a.arg)
	app.Flag("output", outputHelp).Short('o').Default(regfmt.Table.String()).EnumVar(&a.output, regfmt.Formats...)
	app.Flag("loglevel", logLevelHelp).Short('l').Default("w").
		EnumVar(&a.logLevel, "e", "error", "w", "warn", "i", "info", "d", "debug")
	app.Flag("klog", klogHelp).BoolVar(&a.klog)
	app.Flag("sysfs-root", "PCI devices directory.").Hidden().Default(pci.SysfsRoot).StringVar(&a.sysfsRoot)

	return app
}

// parseArgs parses the command line and builds a validated request.
// Nothing outside the process is touched.
func parseArgs(app *kingpin.Application, a *cliArgs, args []string) (config, error) {
	if _, err := app.Parse(args); err != nil {
		return config{}, err
	}

	loaders := []opts.Loader{opts.WithBDF(a.bdf), opts.WithBar(a.bar)}

	if a.read != "" {
		loaders = append(loaders, opts.WithRead(a.read, a.arg))
	}

	if a.write != "" {
		loaders = append(loaders, opts.WithWrite(a.write, a.arg))
	}

	req, err := opts.NewRequest(loaders...)
	if err != nil {
		return config{}, err
	}

	format, err := regfmt.ParseFormat(a.output)
	if err != nil {
		return config{}, err
	}

	level, _ := mmlog.ParseLevel(a.logLevel)

	return config{
		req:       req,
		format:    format,
		logLevel:  level,
		klog:      a.klog,
		sysfsRoot: a.sysfsRoot,
	}, nil
}

func main() {
	var a cliArgs

	app := newApp(&a)

	if len(os.Args) == 1 {
		app.Usage(nil)
		os.Exit(1)
	}

	cfg, err := parseArgs(app, &a, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "mmio-reg: error: %v, try --help\n", err)
		os.Exit(1)
	}

	mmlog.SetLevel(cfg.logLevel)

	if cfg.klog {
		if err := mmlog.SetOutput(mmlog.KernelSyslog); err != nil {
			mmlog.Warn("kernel log unavailable, logging to stderr: %v", err)
		}
	}

	if err := run(cfg, os.Stdout); err != nil {
		mmlog.Error("%v", err)
		os.Exit(1)
	}
}

func run(cfg config, w io.Writer) error {
	mmlog.Info("%s", cfg.req)

	return access(pci.NewResolverWithRoot(cfg.sysfsRoot), cfg.req, cfg.format, w)
}
