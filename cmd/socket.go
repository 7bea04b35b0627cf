package cmd

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var flagSocketAddr string

var socketCmd = &cobra.Command{
	Use:   "socket",
	Short: "Run the line-based TCP detection server",
	Long: `socket listens on --addr (default :6869) and serves one client
at a time. Each line it receives holds one integer or decimal number;
it replies with N lines of predictions (N = the configured prediction
length) followed by a blank terminator line. A malformed line
disconnects the client; the server returns to listening.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}

		addr := flagSocketAddr
		if addr == "" {
			addr = app.Config.SocketAddr
		}

		return runSocket(app, addr)
	},
}

func init() {
	socketCmd.Flags().StringVar(&flagSocketAddr, "addr", "", "listen address (default from config, normally :6869)")
}

func runSocket(app *App, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	defer ln.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		ln.Close()
	}()

	fmt.Fprintf(os.Stdout, "derandom socket server listening on %s\n", addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			_ = saveAppState(app)
			return nil //nolint:nilerr // listener closed on shutdown signal
		}
		serveConn(app, conn)
	}
}

// serveConn handles one client connection at a time, per the protocol's
// single-client-at-a-time contract: Accept above does not spawn a new
// goroutine per connection, it serves this one to completion first.
func serveConn(app *App, conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		obs, err := app.Observe(scanner.Text())
		if err != nil {
			return
		}
		if obs.GeneratorName == "" {
			continue
		}
		if obs.Forward == nil {
			fmt.Fprint(conn, "\n")
			continue
		}
		for _, v := range obs.Forward.DecimalStrings() {
			fmt.Fprintf(conn, "%s\n", v)
		}
		fmt.Fprint(conn, "\n")
	}
}
