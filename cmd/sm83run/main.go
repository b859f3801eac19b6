// Command sm83run runs a program on the SM83 CPU core, streaming its
// serial output to stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/thelolagemann/sm83/internal/boot"
	"github.com/thelolagemann/sm83/internal/machine"
	"github.com/thelolagemann/sm83/internal/types"
	"github.com/thelolagemann/sm83/pkg/log"
	"github.com/thelolagemann/sm83/pkg/profile"
	"github.com/thelolagemann/sm83/pkg/trace"
	"github.com/thelolagemann/sm83/pkg/trace/web"
	"github.com/thelolagemann/sm83/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		stop()
		if !errors.Is(err, flag.ErrHelp) {
			log.New().Errorf("%v", err)
		}
		os.Exit(1)
	}
}

type config struct {
	rom, bootROM, model, pc string
	cycles                  uint64

	trace, compare string
	disasm         bool
	serve          string
	every          uint64
	profile        string
	top            int
	hash           bool
	debug          bool
}

func parseFlags(args []string, output io.Writer) (*config, error) {
	fs := flag.NewFlagSet("sm83run", flag.ContinueOnError)
	fs.SetOutput(output)

	c := &config{}
	fs.StringVar(&c.rom, "rom", "", "The program to run (.gz, .zip and .7z are decompressed)")
	fs.StringVar(&c.bootROM, "boot", "", "The boot rom file to load")
	fs.StringVar(&c.model, "model", "dmg", "The model whose post-boot registers are used. Can be dmg0, dmg, mgb, cgb0, cgb, sgb, sgb2 or agb")
	fs.StringVar(&c.pc, "pc", "", "The address to start execution at")
	fs.Uint64Var(&c.cycles, "cycles", 1<<26, "The number of M-cycles to run for")
	fs.StringVar(&c.trace, "trace", "", "Write a trace of every instruction to the file (.br is compressed)")
	fs.BoolVar(&c.disasm, "disasm", false, "Include the disassembled instruction in the trace")
	fs.StringVar(&c.compare, "compare", "", "Compare every instruction against a reference trace")
	fs.StringVar(&c.serve, "serve", "", "Stream the trace to websocket clients on the address")
	fs.Uint64Var(&c.every, "every", 1, "Stream one of every n instructions")
	fs.StringVar(&c.profile, "profile", "", "Render a histogram of the executed instructions to the PNG file")
	fs.IntVar(&c.top, "top", 32, "The number of instructions in the histogram")
	fs.BoolVar(&c.hash, "hash", false, "Print a digest of the execution and the final memory")
	fs.BoolVar(&c.debug, "debug", false, "Enable debug logging and the LD B, B breakpoint")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.rom == "" {
		fs.Usage()
		return nil, errors.New("no rom file given")
	}
	return c, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	c, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}

	logger := log.New()
	if c.debug {
		logger = log.NewDebug()
	}

	rom, err := utils.LoadFile(c.rom)
	if err != nil {
		return err
	}

	model := types.StringToModel(c.model)
	if model == types.Unset {
		return fmt.Errorf("unknown model %q", c.model)
	}
	opts := []machine.Opt{
		machine.WithLogger(logger),
		machine.WithSerialWriter(stdout),
		machine.AsModel(model),
	}
	if c.debug {
		opts = append(opts, machine.Debug())
	}

	if c.bootROM != "" {
		data, err := utils.LoadFile(c.bootROM)
		if err != nil {
			return err
		}
		b, err := boot.LoadBootROM(data)
		if err != nil {
			return err
		}
		logger.Infof("loaded boot rom %s", b.Checksum())
		opts = append(opts, machine.WithBootROM(b))
	} else {
		opts = append(opts, machine.NoBios())
	}

	if c.pc != "" {
		pc, err := strconv.ParseUint(c.pc, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid pc %q: %w", c.pc, err)
		}
		opts = append(opts, machine.WithEntryPoint(uint16(pc)))
	}

	var tracers []trace.Tracer
	if c.trace != "" {
		w, err := trace.Create(c.trace, c.disasm)
		if err != nil {
			return err
		}
		defer func() {
			if err := w.Close(); err != nil {
				logger.Errorf("closing trace: %v", err)
			}
		}()
		tracers = append(tracers, w)
	}
	if c.compare != "" {
		r, err := trace.Open(c.compare)
		if err != nil {
			return err
		}
		defer r.Close()
		tracers = append(tracers, trace.NewComparer(r))
	}
	var digest *trace.Digest
	if c.hash {
		digest = trace.NewDigest()
		tracers = append(tracers, digest)
	}
	var prof *profile.Profile
	if c.profile != "" {
		prof = profile.New()
		tracers = append(tracers, prof)
	}
	if c.serve != "" {
		hub := web.NewHub(c.every, logger)
		hubCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go hub.Run(hubCtx)

		srv := &http.Server{Addr: c.serve, Handler: hub, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("serving trace: %v", err)
			}
		}()
		defer srv.Close()
		logger.Infof("streaming trace on %s", c.serve)
		tracers = append(tracers, hub)
	}
	if len(tracers) > 0 {
		opts = append(opts, machine.WithTracer(trace.Multi(tracers...)))
	}

	m := machine.New(rom, opts...)
	start := time.Now()
	err = m.Run(ctx, c.cycles)
	logger.Infof("ran %d M-cycles in %s", m.Cycles(), time.Since(start))

	switch {
	case errors.Is(err, machine.ErrBreakpoint):
		if !m.Passed() {
			err = errors.New("test failed")
		} else {
			fmt.Fprintln(stdout, "\ntest passed")
			err = nil
		}
	case errors.Is(err, trace.ErrReferenceEnded):
		logger.Infof("reference trace ended, all instructions matched")
		err = nil
	}

	if digest != nil {
		fmt.Fprintf(stdout, "trace:  %016x (%d instructions)\n", digest.Sum64(), digest.Count())
		fmt.Fprintf(stdout, "memory: %016x\n", trace.Memory(m.MMU.Dump()))
	}
	if prof != nil {
		if perr := prof.Save(c.profile, c.top); perr != nil {
			return perr
		}
		if c.debug {
			prof.WriteText(stdout, c.top)
		}
	}

	return err
}
