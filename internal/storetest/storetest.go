// Package storetest provides in-process servers for testing store bindings.
package storetest

import (
	"net"
	"strings"

	"github.com/alicebob/miniredis/v2"
	"github.com/tidwall/redcon"
)

// StartRedis starts an in-memory Redis server. The caller closes it.
func StartRedis() (*miniredis.Miniredis, error) {
	return miniredis.Run()
}

// UnusedAddr returns a loopback address nothing listens on, so dialing it is
// refused.
func UnusedAddr() (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	addr := ln.Addr().String()
	if err := ln.Close(); err != nil {
		return "", err
	}
	return addr, nil
}

// Server is a fake RESP server that speaks just enough of the protocol to get
// a client connected and then answers range queries with a status reply
// instead of an array.
type Server struct {
	ln net.Listener
}

// StartScalarServer starts a Server on a loopback port.
func StartScalarServer() (*Server, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	srv := &Server{ln: ln}
	go func() {
		_ = redcon.Serve(ln, srv.handle,
			func(redcon.Conn) bool { return true },
			func(redcon.Conn, error) {})
	}()
	return srv, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Close stops accepting connections.
func (s *Server) Close() error {
	return s.ln.Close()
}

func (s *Server) handle(conn redcon.Conn, cmd redcon.Command) {
	name := strings.ToLower(string(cmd.Args[0]))
	switch name {
	case "ping":
		conn.WriteString("PONG")
	case "client", "select", "auth":
		conn.WriteString("OK")
	case "zadd":
		conn.WriteInt((len(cmd.Args) - 2) / 2)
	case "zrange", "zrevrange":
		conn.WriteString("OK")
	case "quit":
		conn.WriteString("OK")
		_ = conn.Close()
	default:
		conn.WriteError("ERR unknown command '" + name + "'")
	}
}
