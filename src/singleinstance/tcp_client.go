package singleinstance

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"time"

	"color-picker/src/config"
)

type tcpClient struct{}

func newTcpClient() Client { return &tcpClient{} }

func (c *tcpClient) TryPick(ctx context.Context) (bool, string, error) {
	deadline := 2 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 {
			deadline = d
		}
	}
	ports := config.ResidentPorts()
	for port := ports.Start; port <= ports.End; port++ {
		addr := net.JoinHostPort(residentHost, strconv.Itoa(port))
		if !ping(addr, deadline) {
			continue
		}
		conn, err := net.DialTimeout("tcp", addr, deadline)
		if err != nil {
			continue
		}
		hex, err := pick(ctx, conn)
		return true, hex, err
	}
	return false, "", nil
}

func pick(ctx context.Context, conn net.Conn) (string, error) {
	defer conn.Close()

	// Unblock the read below if the caller gives up.
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	w := bufio.NewWriter(conn)
	if _, err := w.WriteString(ActionPick + "\n"); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	br := bufio.NewReader(conn)
	status, err := br.ReadString('\n')
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	body, _ := io.ReadAll(br)
	switch status {
	case statusOK:
		return string(body), nil
	case statusError:
		return "", errors.New(string(body))
	default:
		return "", errors.New("unexpected response from resident")
	}
}
