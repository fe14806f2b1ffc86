// Command ringctl is an interactive client for the byte-framed client API
// (spec.md §6.1): a liner-backed REPL issuing put/get requests over a
// keep-alive TCP connection. Grounded on the teacher's cmd/cache-client
// (github.com/peterh/liner REPL, "use <addr>" to reconnect, pretty-printed
// replies), adapted from HTTP/JSON requests to the spec's raw big-endian
// PUT/GET/SUCCESS/FAILURE frames.
package main

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"chorddht/internal/node/clientapi"

	"github.com/peterh/liner"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7001", "client API address of a ring node")
	timeout := flag.Duration("timeout", 5*time.Second, "dial/request timeout")
	flag.Parse()

	fmt.Printf("chorddht ring client. Connected to %s\n", *addr)
	fmt.Println("Available commands: put <key> <value>/get <key>/use <addr>/help/exit")
	fmt.Println("")

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	currentAddr := *addr
	var conn net.Conn

	for {
		input, err := line.Prompt(fmt.Sprintf("ring[%s]> ", currentAddr))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println("Aborted")
				continue
			}
			break
		}
		line.AppendHistory(input)

		args := strings.Fields(strings.TrimSpace(input))
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			fmt.Println("put <key> <value>  - store value under key (TTL-less, replication 1)")
			fmt.Println("get <key>          - fetch the value stored under key")
			fmt.Println("use <addr>         - switch to a different node's client API address")
			fmt.Println("exit               - quit")

		case "use", "connect":
			if len(args) < 2 {
				fmt.Println("Usage: use <addr>")
				continue
			}
			if conn != nil {
				_ = conn.Close()
				conn = nil
			}
			currentAddr = args[1]

		case "exit", "quit":
			if conn != nil {
				_ = conn.Close()
			}
			return

		case "put":
			if len(args) < 3 {
				fmt.Println("Usage: put <key> <value>")
				continue
			}
			var err error
			conn, err = ensureConn(conn, currentAddr, *timeout)
			if err != nil {
				fmt.Printf("connect failed: %v\n", err)
				continue
			}
			key := sha256.Sum256([]byte(args[1]))
			value := []byte(strings.Join(args[2:], " "))
			start := time.Now()
			ok, respKey, err := doPut(conn, key, value, *timeout)
			latency := time.Since(start)
			if err != nil {
				fmt.Printf("put failed: %v | latency=%s\n", err, latency)
				_ = conn.Close()
				conn = nil
				continue
			}
			if ok {
				fmt.Printf("PUT ok | key=%x | latency=%s\n", respKey[:4], latency)
			} else {
				fmt.Printf("PUT failed (server returned FAILURE) | latency=%s\n", latency)
			}

		case "get":
			if len(args) < 2 {
				fmt.Println("Usage: get <key>")
				continue
			}
			var err error
			conn, err = ensureConn(conn, currentAddr, *timeout)
			if err != nil {
				fmt.Printf("connect failed: %v\n", err)
				continue
			}
			key := sha256.Sum256([]byte(args[1]))
			start := time.Now()
			value, found, err := doGet(conn, key, *timeout)
			latency := time.Since(start)
			if err != nil {
				fmt.Printf("get failed: %v | latency=%s\n", err, latency)
				_ = conn.Close()
				conn = nil
				continue
			}
			if found {
				fmt.Printf("GET hit (%d bytes) | latency=%s\n%s\n", len(value), latency, string(value))
			} else {
				fmt.Printf("GET miss | latency=%s\n", latency)
			}

		default:
			fmt.Printf("unknown command %q, try 'help'\n", args[0])
		}
	}
}

func ensureConn(conn net.Conn, addr string, timeout time.Duration) (net.Conn, error) {
	if conn != nil {
		return conn, nil
	}
	return net.DialTimeout("tcp", addr, timeout)
}

// doPut writes a PUT frame (spec.md §6.1: ttl u16 BE, replication u8,
// reserved u8, key 32 bytes, value) and waits for SUCCESS/FAILURE.
func doPut(conn net.Conn, key [32]byte, value []byte, timeout time.Duration) (ok bool, respKey [32]byte, err error) {
	_ = conn.SetDeadline(time.Now().Add(timeout))
	payload := make([]byte, 2+1+1+clientapi.KeyLen+len(value))
	binary.BigEndian.PutUint16(payload[0:2], 0) // no expiry
	payload[2] = 1                              // replication factor
	copy(payload[4:4+clientapi.KeyLen], key[:])
	copy(payload[4+clientapi.KeyLen:], value)
	if err = writeFrame(conn, clientapi.OpPut, payload); err != nil {
		return false, respKey, err
	}
	_, respKey, ok, err = readReply(conn)
	return ok, respKey, err
}

// doGet writes a GET frame (key 32 bytes) and waits for SUCCESS/FAILURE.
func doGet(conn net.Conn, key [32]byte, timeout time.Duration) (value []byte, found bool, err error) {
	_ = conn.SetDeadline(time.Now().Add(timeout))
	if err = writeFrame(conn, clientapi.OpGet, key[:]); err != nil {
		return nil, false, err
	}
	value, _, found, err = readReply(conn)
	return value, found, err
}

func writeFrame(w io.Writer, code uint16, payload []byte) error {
	size := 4 + len(payload)
	buf := make([]byte, size)
	binary.BigEndian.PutUint16(buf[0:2], uint16(size))
	binary.BigEndian.PutUint16(buf[2:4], code)
	copy(buf[4:], payload)
	_, err := w.Write(buf)
	return err
}

// readReply reads one SUCCESS/FAILURE frame: SUCCESS carries key(32)+value,
// FAILURE carries only key(32).
func readReply(conn net.Conn) (value []byte, key [32]byte, found bool, err error) {
	var hdr [4]byte
	if _, err = io.ReadFull(conn, hdr[:]); err != nil {
		return nil, key, false, err
	}
	size := binary.BigEndian.Uint16(hdr[0:2])
	code := binary.BigEndian.Uint16(hdr[2:4])
	if int(size) < 4 {
		return nil, key, false, fmt.Errorf("ringctl: declared size %d smaller than header", size)
	}
	body := make([]byte, int(size)-4)
	if _, err = io.ReadFull(conn, body); err != nil {
		return nil, key, false, err
	}
	if len(body) < clientapi.KeyLen {
		return nil, key, false, fmt.Errorf("ringctl: reply shorter than key length")
	}
	copy(key[:], body[:clientapi.KeyLen])
	switch code {
	case clientapi.OpSuccess:
		return append([]byte(nil), body[clientapi.KeyLen:]...), key, true, nil
	case clientapi.OpFailure:
		return nil, key, false, nil
	default:
		return nil, key, false, fmt.Errorf("ringctl: unexpected reply code %d", code)
	}
}
