// Command fat12sh is a small interactive shell over a mounted FAT12
// image, grounded in the original firmware's command loop (Run and
// Command_ProcessCommand) but reimplemented as a line-oriented REPL
// dispatching to cobra commands instead of a bare keyboard-interrupt
// state machine - a shell is an external collaborator to the driver
// core, so this lives in its own cmd/ package consuming only the
// public fat12 API.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tomos-os/fat12"
	"github.com/tomos-os/fat12/blockdevice"
)

type shell struct {
	vol    *fat12.Fs
	cwd    *fat12.Handle
	cwdStr string
	prompt string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: fat12sh <image-file>")
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	dev := blockdevice.NewFloppy(f)
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	vol, err := fat12.Mount(dev, fat12.WithLogger(log))
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not mount volume:", err)
		os.Exit(1)
	}

	sh := &shell{vol: vol, cwd: nil, cwdStr: `\`, prompt: "Command>"}
	sh.run()
}

// run is the REPL loop: read a line, build and execute a fresh cobra
// command tree for it, print the prompt again. This mirrors the
// firmware's Run loop's read-dispatch-reprompt shape without its
// raw-keycode handling, which the OS layer (not this driver) owns.
func (sh *shell) run() {
	fmt.Printf("Opened volume %q\n", sh.vol.Label())
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print(sh.prompt + " ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			root := sh.buildRootCmd()
			root.SetArgs(strings.Fields(line))
			if err := root.Execute(); err != nil {
				fmt.Println(err)
			}
		}
		fmt.Print(sh.prompt + " ")
	}
}

func (sh *shell) buildRootCmd() *cobra.Command {
	root := &cobra.Command{Use: "fat12sh", SilenceUsage: true, SilenceErrors: true}

	root.AddCommand(&cobra.Command{
		Use: "ls", Aliases: []string{"dir"},
		RunE: func(cmd *cobra.Command, args []string) error { return sh.ls() },
	})
	root.AddCommand(&cobra.Command{
		Use:  "cd",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error { return sh.cd(args[0]) },
	})
	root.AddCommand(&cobra.Command{
		Use:  "read",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error { return sh.read(args[0]) },
	})
	root.AddCommand(&cobra.Command{
		Use: "pwd",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(sh.cwdStr)
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use: "cls",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print("\033[H\033[2J")
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use:  "prompt",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sh.prompt = args[0]
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use:  "readdisk",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error { return sh.readdisk(args) },
	})
	root.AddCommand(&cobra.Command{
		Use: "exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Shutting Down TomOs")
			os.Exit(0)
			return nil
		},
	})

	return root
}

func (sh *shell) ls() error {
	return sh.vol.Iterate(sh.cwd, func(entry fat12.DirEntry) fat12.IterControl {
		if entry.IsVolumeLabel() || entry.IsHidden() {
			return fat12.Continue
		}
		marker := " "
		if entry.IsDirectory() {
			marker = "d"
		}
		fmt.Printf("%s %8d  %s\n", marker, entry.Size(), entry.Name())
		return fat12.Continue
	})
}

func (sh *shell) cd(path string) error {
	h, err := sh.vol.OpenFrom(sh.cwd, path)
	if err != nil {
		return err
	}
	if !h.IsDir() {
		return fmt.Errorf("%s: not a directory", path)
	}
	sh.cwd = h
	sh.cwdStr = joinPath(sh.cwdStr, path)
	return nil
}

func (sh *shell) read(path string) error {
	h, err := sh.vol.OpenFrom(sh.cwd, path)
	if err != nil {
		return err
	}
	defer h.Close()
	if h.IsDir() {
		return fmt.Errorf("%s: is a directory", path)
	}

	buf := make([]byte, h.Size())
	n, err := h.Read(buf)
	if err != nil && n == 0 {
		return err
	}
	os.Stdout.Write(buf[:n])
	fmt.Println()
	return nil
}

// readdisk dumps a raw sector as hex, decimal, or ASCII, exactly the
// three modes Command_Disk's 'h'/other/'c' branches supported.
func (sh *shell) readdisk(args []string) error {
	lba, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return err
	}
	mode := "d"
	if len(args) == 2 {
		mode = strings.TrimPrefix(args[1], "/")
	}

	sector, err := sh.vol.RawSector(uint32(lba))
	if err != nil {
		return err
	}

	for i := 0; i < blockdevice.SectorSize; i += 4 {
		switch mode {
		case "c":
			fmt.Printf("%c%c%c%c", sector[i], sector[i+1], sector[i+2], sector[i+3])
		case "h":
			fmt.Printf("%02x%02x%02x%02x ", sector[i], sector[i+1], sector[i+2], sector[i+3])
		default:
			fmt.Printf("%d %d %d %d ", sector[i], sector[i+1], sector[i+2], sector[i+3])
		}
	}
	fmt.Println()
	return nil
}

// joinPath mirrors the firmware's pwd-joining convention
// (original_source/kernel/disk_command.c's SetPresentWorkingDirectory
// and GetFileFromPath): a rooted path (leading '\') replaces cwdStr
// outright, otherwise rel is appended onto it with a single separator.
func joinPath(base, rel string) string {
	if strings.HasPrefix(rel, `\`) {
		return rel
	}
	if base == `\` {
		return `\` + rel
	}
	return base + `\` + rel
}
