// Command quadgo is a line-oriented shell over a persistent quadtree.
//
// Usage:
//
//	quadgo [-data DIR | -redis ADDR] [-universe minX,minY,maxX,maxY] [-capacity N]
//
// Commands:
//
//	insert <id> <x> <y>                 store a point with id as payload
//	range <minX> <minY> <maxX> <maxY>   list points inside the rectangle
//	nearest <x> <y> [radius]            closest point within the radius square
//	update <id> <x> <y>                 replace the payload of an existing point
//	exit
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/quadgo"
	"github.com/hupe1980/quadgo/codec"
	"github.com/hupe1980/quadgo/geo"
	"github.com/hupe1980/quadgo/kvstore"
	"github.com/hupe1980/quadgo/kvstore/redisstore"
)

func main() {
	_ = godotenv.Load()

	var (
		dataDir   = flag.String("data", "", "local data directory (default: in-memory)")
		redisAddr = flag.String("redis", "", "redis address, e.g. 127.0.0.1:6379 (overrides -data)")
		codecName = flag.String("codec", "go-json", "record codec: json, go-json, json+s2, go-json+s2")
		capacity  = flag.Int("capacity", 4, "leaf capacity")
		universe  = flag.String("universe", "0,0,100,100", "universe corners: minX,minY,maxX,maxY")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if err := run(*dataDir, *redisAddr, *codecName, *capacity, *universe, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "quadgo:", err)
		os.Exit(1)
	}
}

func run(dataDir, redisAddr, codecName string, capacity int, universe string, verbose bool) error {
	ctx := context.Background()

	c, ok := codec.ByName(codecName)
	if !ok {
		return fmt.Errorf("unknown codec %q", codecName)
	}

	corners, err := parseFloats(strings.Split(universe, ","), 4)
	if err != nil {
		return fmt.Errorf("invalid -universe %q: %w", universe, err)
	}
	boundary := geo.RectFromCorners(corners[0], corners[1], corners[2], corners[3])

	var store kvstore.Store
	switch {
	case redisAddr != "":
		client := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASS"),
		})
		store = redisstore.New(client, "quadgo:")
	case dataDir != "":
		store, err = kvstore.NewLocal(dataDir)
		if err != nil {
			return err
		}
	default:
		store = kvstore.NewMemory()
	}

	opts := []quadgo.Option{quadgo.WithCodec(c)}
	if verbose {
		opts = append(opts, quadgo.WithLogLevel(slog.LevelDebug))
	}

	qt, err := quadgo.Open(ctx, store, boundary, capacity, opts...)
	if err != nil {
		return err
	}
	defer qt.Close()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		if line != "" {
			fmt.Println(dispatch(ctx, qt, strings.Fields(line)))
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}

func dispatch(ctx context.Context, qt *quadgo.Quadgo, parts []string) string {
	switch parts[0] {
	case "insert":
		if len(parts) != 4 {
			return "usage: insert <id> <x> <y>"
		}
		coords, err := parseFloats(parts[2:], 2)
		if err != nil {
			return err.Error()
		}
		if err := qt.Insert(ctx, coords[0], coords[1], parts[1]); err != nil {
			return err.Error()
		}
		return "OK"

	case "range":
		if len(parts) != 5 {
			return "usage: range <minX> <minY> <maxX> <maxY>"
		}
		corners, err := parseFloats(parts[1:], 4)
		if err != nil {
			return err.Error()
		}
		points, err := qt.Range(ctx, corners[0], corners[1], corners[2], corners[3])
		if err != nil {
			return err.Error()
		}
		if len(points) == 0 {
			return "no points"
		}
		var sb strings.Builder
		for i, p := range points {
			if i > 0 {
				sb.WriteByte('\n')
			}
			fmt.Fprintf(&sb, "%v (%g, %g)", p.Payload, p.X, p.Y)
		}
		return sb.String()

	case "nearest":
		if len(parts) != 3 && len(parts) != 4 {
			return "usage: nearest <x> <y> [radius]"
		}
		args, err := parseFloats(parts[1:], len(parts)-1)
		if err != nil {
			return err.Error()
		}
		var (
			p     geo.Point
			found bool
		)
		if len(args) == 3 {
			p, found, err = qt.NearestWithin(ctx, args[0], args[1], args[2])
		} else {
			p, found, err = qt.Nearest(ctx, args[0], args[1])
		}
		if err != nil {
			return err.Error()
		}
		if !found {
			return "none"
		}
		return fmt.Sprintf("%v (%g, %g)", p.Payload, p.X, p.Y)

	case "update":
		if len(parts) != 4 {
			return "usage: update <id> <x> <y>"
		}
		coords, err := parseFloats(parts[2:], 2)
		if err != nil {
			return err.Error()
		}
		if err := qt.Update(ctx, coords[0], coords[1], parts[1]); err != nil {
			return err.Error()
		}
		return "OK"

	default:
		return "Unknown command"
	}
}

func parseFloats(fields []string, want int) ([]float64, error) {
	if len(fields) != want {
		return nil, fmt.Errorf("expected %d numbers, got %d", want, len(fields))
	}
	out := make([]float64, want)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		out[i] = v
	}
	return out, nil
}
