package watch

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// X11Source reads the pointer position from the X server.
type X11Source struct {
	conn *xgb.Conn
	root xproto.Window
}

func NewX11Source() (*X11Source, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	root := xproto.Setup(conn).DefaultScreen(conn).Root
	return &X11Source{conn: conn, root: root}, nil
}

func (s *X11Source) Position() (int, int, error) {
	reply, err := xproto.QueryPointer(s.conn, s.root).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("query pointer: %w", err)
	}
	return int(reply.RootX), int(reply.RootY), nil
}

func (s *X11Source) Close() {
	s.conn.Close()
}
