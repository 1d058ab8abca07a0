// chesskit is a command line harness for the chess engine: perft counting
// and validation, FEN round-tripping and PGN re-serialisation.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"chesskit/internal/chess"
	"chesskit/internal/eco"
	"chesskit/internal/pgn"
	"chesskit/internal/render"
	"chesskit/internal/testutil"
	"chesskit/internal/worker"
)

const programVersion = "0.1.0"

var (
	fenFlag      = flag.String("fen", chess.StartingFEN, "position to operate on")
	perftDepth   = flag.Int("perft", 0, "run perft to the given depth")
	divideFlag   = flag.Bool("divide", false, "with -perft, print per-move node counts")
	validateFlag = flag.Bool("validate", false, "run the reference perft suite")
	workersFlag  = flag.Int("workers", runtime.NumCPU(), "workers for -validate")
	pgnFile      = flag.String("pgn", "", "parse a PGN file and re-serialise it")
	classifyFlag = flag.Bool("classify", false, "with -pgn, add ECO opening tags")
	svgFile      = flag.String("svg", "", "write the position as SVG to the given file")
	versionFlag  = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("chesskit version %s\n", programVersion)
		return
	}

	switch {
	case *validateFlag:
		os.Exit(validate())
	case *perftDepth > 0:
		os.Exit(perft())
	case *pgnFile != "":
		os.Exit(roundTripPGN())
	case *svgFile != "":
		os.Exit(writeSVG())
	default:
		os.Exit(showPosition())
	}
}

func parsePosition() (*chess.Board, error) {
	return chess.ParseFEN(*fenFlag)
}

func showPosition() int {
	board, err := parsePosition()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Print(board)
	fmt.Printf("FEN: %s\n", board.FEN())
	fmt.Printf("Legal moves (%d): %s\n", board.LegalMoves().Len(), board.LegalMoves())
	return 0
}

func perft() int {
	board, err := parsePosition()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *divideFlag {
		for lan, nodes := range chess.PerftDivide(board, *perftDepth) {
			fmt.Printf("%s: %d\n", lan, nodes)
		}
	}
	fmt.Printf("perft(%d) = %d\n", *perftDepth, chess.Perft(board, *perftDepth))
	return 0
}

// validate fans the reference suite across a worker pool and reports any
// mismatch against the published counts.
func validate() int {
	pool := worker.NewPool(*workersFlag, len(testutil.PerftSuite))
	pool.Start()
	go func() {
		for _, c := range testutil.PerftSuite {
			pool.Submit(worker.Job{Name: c.Name, FEN: c.FEN, Depth: c.Depth, Expected: c.Expected})
		}
		pool.Close()
	}()

	failures := 0
	for res := range pool.Results() {
		status := "ok"
		if !res.OK() {
			status = fmt.Sprintf("FAIL (want %d)", res.Job.Expected)
			failures++
		}
		if res.Err != nil {
			status = fmt.Sprintf("FAIL (%v)", res.Err)
		}
		fmt.Printf("%-22s %12d nodes %10s  %s\n", res.Job.Name, res.Nodes, res.Elapsed.Round(1e6), status)
	}
	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%d perft mismatches\n", failures)
		return 1
	}
	return 0
}

func roundTripPGN() int {
	f, err := os.Open(*pgnFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer f.Close()

	g, err := pgn.Parse(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", *pgnFile, err)
		return 1
	}
	if *classifyFlag {
		eco.Default().Annotate(g)
	}
	out, err := pgn.Write(g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Print(out)
	return 0
}

func writeSVG() int {
	board, err := parsePosition()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	f, err := os.Create(*svgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer f.Close()
	render.Board(f, board, render.Options{})
	return 0
}
