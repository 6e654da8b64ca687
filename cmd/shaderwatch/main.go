// Command shaderwatch validates an annotated shader and watches it for
// changes. It compiles through the pure-Go naga backend, so no GPU is
// needed: point it at a WGSL fragment shader and edit the file while it
// runs to see reloads, preserved uniform values, and compile errors.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/shaderlab"
	"github.com/gogpu/shaderlab/backend/naga"
	"github.com/gogpu/shaderlab/uniform"
)

func main() {
	var (
		interval = flag.Duration("interval", 500*time.Millisecond, "poll interval")
		once     = flag.Bool("once", false, "validate once and exit")
		verbose  = flag.Bool("v", false, "log pipeline internals")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: shaderwatch [flags] <shader.wgsl>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	if *verbose {
		shaderlab.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	shader := shaderlab.New(naga.New())
	if err := shader.Load(path); err != nil {
		if *once {
			log.Fatalf("FAIL %s: %v", path, err)
		}
		log.Printf("load failed, watching for a fix: %v", err)
	} else {
		report(shader)
	}

	if *once {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("watching %s (every %v, Ctrl-C to stop)", path, *interval)
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reloaded, err := shader.CheckAndReload()
			switch {
			case err != nil:
				log.Printf("reload failed: %v", err)
			case reloaded:
				log.Printf("reloaded %s", path)
				report(shader)
			}
		}
	}
}

// report prints the scanned uniform table, grouped the way an editor
// panel would lay it out.
func report(shader *shaderlab.Shader) {
	c := shader.Uniforms()
	fmt.Printf("OK %s: %d uniforms, %d includes\n", shader.Path(), c.Len(), len(shader.Dependencies()))

	for _, group := range c.Groups() {
		if group != "" {
			fmt.Printf("  [%s]\n", group)
		}
		for _, d := range c.ByGroup(group) {
			fmt.Printf("    %-24s %-8s %s\n", d.Common().Display, d.Kind(), describe(d))
		}
	}
}

// describe summarizes one descriptor's value and range.
func describe(d uniform.Descriptor) string {
	switch u := d.(type) {
	case *uniform.Float:
		return fmt.Sprintf("value=%g range=[%g, %g] step=%g", u.Value, u.Min, u.Max, u.Step)
	case *uniform.Int:
		return fmt.Sprintf("value=%d range=[%d, %d]", u.Value, u.Min, u.Max)
	case *uniform.Bool:
		return fmt.Sprintf("value=%v", u.Value)
	case *uniform.Vec2:
		return fmt.Sprintf("value=%v", u.Value)
	case *uniform.Vec3:
		return fmt.Sprintf("value=%v", u.Value)
	case *uniform.Vec4:
		return fmt.Sprintf("value=%v", u.Value)
	case *uniform.Color:
		return fmt.Sprintf("value=%v channels=%d", u.Value, u.Channels())
	case *uniform.Dropdown:
		return fmt.Sprintf("value=%s options=%v", u.Options[u.Value], u.Options)
	}
	return ""
}
