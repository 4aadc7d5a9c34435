package main

import (
	"fmt"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
)

var (
	flagPort    int
	flagWidth   int
	flagHeight  int
	flagFPS     int
	flagFormat  string
	flagHelp    bool
	flagVersion bool
)

func init() {
	flag.IntVarP(&flagPort, "port", "p", 8080, "HTTP listen port")
	flag.IntVarP(&flagWidth, "width", "x", 640, "Frame width")
	flag.IntVarP(&flagHeight, "height", "y", 360, "Frame height")
	flag.IntVarP(&flagFPS, "fps", "r", 30, "Frame rate")
	flag.StringVarP(&flagFormat, "format", "f", "argb", "Output format")

	flag.BoolVarP(&flagHelp, "help", "h", false, "Print usage information and exit")
	flag.BoolVarP(&flagVersion, "version", "v", false, "Print version information and exit")
}

const helpString = `Real-time alpha mask compositing for raw video streams

Usage: alphamaskd [OPTION]...

Network:
  -p, --port=NUM         HTTP listen port for the preview page (default: 8080)

Video:
  -x, --width=NUM        Frame width (default: 640)
  -y, --height=NUM       Frame height (default: 360)
  -r, --fps=NUM          Frame rate (default: 30)
  -f, --format=FMT       Output format: a420, argb or ayuv (default: argb)

Miscellaneous:
  -h, --help             Prints this help message and exits
  -v, --version          Prints version information and exits

Please report bugs to: aloha@lanikailabs.com`

// Help information is printed and program exits
func help() {
	r := color.New(color.FgRed)
	y := color.New(color.FgYellow)
	b := color.New(color.FgCyan)

	//         _         _                                     _
	//   __ _ | | _ __  | |__    __ _  _ __ ___    __ _  ___ | | __
	//  / _` || || '_ \ | '_ \  / _` || '_ ` _ \  / _` |/ __|| |/ /
	// | (_| || || |_) || | | || (_| || | | | | || (_| |\__ \|   <
	//  \__,_||_|| .__/ |_| |_| \__,_||_| |_| |_| \__,_||___/|_|\_\
	//           |_|

	// Line 1
	r.Printf("        ")
	y.Printf(" _ ")
	b.Printf("       ")
	y.Printf(" _     ")
	r.Printf("       ")
	y.Printf("           ")
	b.Printf("       ")
	y.Printf("     ")
	r.Println(" _    ")

	// Line 2
	r.Printf("   __ _ ")
	y.Printf("| |")
	b.Printf(" _ __  ")
	y.Printf("| |__  ")
	r.Printf("  __ _ ")
	y.Printf(" _ __ ___  ")
	b.Printf("  __ _ ")
	y.Printf(" ___ ")
	r.Println("| | __")

	// Line 3
	r.Printf("  / _` |")
	y.Printf("| |")
	b.Printf("| '_ \\ ")
	y.Printf("| '_ \\ ")
	r.Printf(" / _` |")
	y.Printf("| '_ ` _ \\ ")
	b.Printf(" / _` |")
	y.Printf("/ __|")
	r.Println("| |/ /")

	// Line 4
	r.Printf(" | (_| |")
	y.Printf("| |")
	b.Printf("| |_) |")
	y.Printf("| | | |")
	r.Printf("| (_| |")
	y.Printf("| | | | | |")
	b.Printf("| (_| |")
	y.Printf("\\__ \\")
	r.Println("|   < ")

	// Line 5
	r.Printf("  \\__,_|")
	y.Printf("|_|")
	b.Printf("| .__/ ")
	y.Printf("|_| |_|")
	r.Printf(" \\__,_|")
	y.Printf("|_| |_| |_|")
	b.Printf(" \\__,_|")
	y.Printf("|___/")
	r.Println("|_|\\_\\")

	// Line 6
	r.Printf("        ")
	y.Printf("   ")
	b.Println("|_|    ")

	fmt.Println(helpString)
}
