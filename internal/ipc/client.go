package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Start requests the daemon to start the playback watcher.
func (c *Client) Start() (*StartResponse, error) {
	var resp StartResponse
	if err := c.client.Call("MediaBridge.Start", StartRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop requests the daemon to stop the playback watcher.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("MediaBridge.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("MediaBridge.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Control dispatches a transport action to the active backend.
func (c *Client) Control(action string) (*ControlResponse, error) {
	var resp ControlResponse
	req := ControlRequest{Action: action}
	if err := c.client.Call("MediaBridge.Control", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// NowPlaying retrieves the current playback state.
func (c *Client) NowPlaying() (*NowPlayingResponse, error) {
	var resp NowPlayingResponse
	if err := c.client.Call("MediaBridge.NowPlaying", NowPlayingRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Playlists lists the discovered playlists.
func (c *Client) Playlists() (*PlaylistsResponse, error) {
	var resp PlaylistsResponse
	if err := c.client.Call("MediaBridge.Playlists", PlaylistsRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PlaylistStart launches a playlist by name.
func (c *Client) PlaylistStart(name string) (*PlaylistStartResponse, error) {
	var resp PlaylistStartResponse
	req := PlaylistStartRequest{Name: name}
	if err := c.client.Call("MediaBridge.PlaylistStart", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History fetches journaled playback events, newest first.
func (c *Client) History(limit int) (*HistoryResponse, error) {
	var resp HistoryResponse
	req := HistoryRequest{Limit: limit}
	if err := c.client.Call("MediaBridge.History", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HistoryClear removes all journaled playback events.
func (c *Client) HistoryClear() (*HistoryClearResponse, error) {
	var resp HistoryClearResponse
	if err := c.client.Call("MediaBridge.HistoryClear", HistoryClearRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DatabaseHealth retrieves detailed journal database diagnostics.
func (c *Client) DatabaseHealth() (*DatabaseHealthResponse, error) {
	var resp DatabaseHealthResponse
	if err := c.client.Call("MediaBridge.DatabaseHealth", DatabaseHealthRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestNotification triggers a notification test via the daemon.
func (c *Client) TestNotification() (*TestNotificationResponse, error) {
	var resp TestNotificationResponse
	if err := c.client.Call("MediaBridge.TestNotification", TestNotificationRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
