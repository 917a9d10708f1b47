package service

import (
	"bufio"
	"fmt"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// respServer is a minimal RESP2 redis stand-in. It records every command and answers
// SET with OK, DEL with 1 and anything else with an error. Unlike redismock it sits
// behind a real connection, so go-redis applies its own context checks.
type respServer struct {
	listener  net.Listener
	onCommand func(args []string)

	mu       sync.Mutex
	commands [][]string
}

func newRespServer(t *testing.T, onCommand func(args []string)) *respServer {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &respServer{listener: listener, onCommand: onCommand}
	go srv.serve()

	t.Cleanup(func() { _ = listener.Close() })
	return srv
}

func (srv *respServer) client(t *testing.T) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:            srv.listener.Addr().String(),
		Protocol:        2,
		DisableIdentity: true,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

// received reports whether a command with the given name and first argument arrived.
func (srv *respServer) received(name, key string) bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	for _, args := range srv.commands {
		if len(args) > 1 && strings.EqualFold(args[0], name) && args[1] == key {
			return true
		}
	}
	return false
}

func (srv *respServer) serve() {
	for {
		conn, err := srv.listener.Accept()
		if err != nil {
			return
		}
		go srv.handle(conn)
	}
}

func (srv *respServer) handle(conn net.Conn) {
	defer conn.Close()

	r := bufio.NewReader(conn)
	for {
		args, err := readRespCommand(r)
		if err != nil {
			return
		}

		srv.mu.Lock()
		srv.commands = append(srv.commands, args)
		srv.mu.Unlock()

		if srv.onCommand != nil {
			srv.onCommand(args)
		}

		reply := "-ERR unknown command\r\n"
		switch strings.ToUpper(args[0]) {
		case "SET":
			reply = "+OK\r\n"
		case "DEL":
			reply = ":1\r\n"
		}

		if _, err := io.WriteString(conn, reply); err != nil {
			return
		}
	}
}

func readRespCommand(r *bufio.Reader) ([]string, error) {
	header, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(header, "*") {
		return nil, fmt.Errorf("unexpected header %q", header)
	}

	n, err := strconv.Atoi(strings.TrimSpace(header[1:]))
	if err != nil {
		return nil, err
	}

	args := make([]string, 0, n)
	for i := 0; i < n; i++ {
		size, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}

		length, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(size, "$")))
		if err != nil {
			return nil, err
		}

		buf := make([]byte, length+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args = append(args, string(buf[:length]))
	}

	return args, nil
}
