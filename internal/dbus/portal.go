package dbus

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/notch/internal/platform"
)

const (
	portalDest     = "org.freedesktop.portal.Desktop"
	portalPath     = dbus.ObjectPath("/org/freedesktop/portal/desktop")
	fileChooser    = "org.freedesktop.portal.FileChooser"
	openFile       = fileChooser + ".OpenFile"
	portalRequest  = "org.freedesktop.portal.Request"
	responseMember = "Response"

	responseSuccess = 0

	// signalBuffer absorbs unrelated session signals (MPRIS property
	// changes, name owner churn) that arrive while the dialog is open.
	signalBuffer = 64
)

// Portal picks folders through the xdg-desktop-portal FileChooser.
type Portal struct {
	session *Session
}

var _ platform.FolderPicker = (*Portal)(nil)

// NewPortal creates a folder picker on session.
func NewPortal(session *Session) *Portal {
	return &Portal{session: session}
}

// PickFolder opens a directory chooser and waits for the user. It returns ""
// with a nil error when the dialog is cancelled.
func (p *Portal) PickFolder(ctx context.Context, title string) (string, error) {
	if err := p.session.ready(); err != nil {
		return "", err
	}
	conn := p.session.conn

	names := conn.Names()
	if len(names) == 0 {
		return "", fmt.Errorf("connection has no unique name")
	}
	token := "notch_" + ulid.Make().String()
	expected := requestPath(names[0], token)

	// Subscribe before calling so a fast Response is not lost.
	signals := make(chan *dbus.Signal, signalBuffer)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)

	match := []dbus.MatchOption{
		dbus.WithMatchInterface(portalRequest),
		dbus.WithMatchMember(responseMember),
		dbus.WithMatchObjectPath(expected),
	}
	if err := conn.AddMatchSignal(match...); err != nil {
		return "", fmt.Errorf("failed to watch portal response: %w", err)
	}
	defer func() { _ = conn.RemoveMatchSignal(match...) }()

	options := map[string]dbus.Variant{
		"handle_token": dbus.MakeVariant(token),
		"directory":    dbus.MakeVariant(true),
		"modal":        dbus.MakeVariant(true),
	}
	var handle dbus.ObjectPath
	err := conn.Object(portalDest, portalPath).
		CallWithContext(ctx, openFile, 0, "", title, options).
		Store(&handle)
	if err != nil {
		return "", fmt.Errorf("failed to open file chooser: %w", err)
	}

	return awaitResponse(ctx, signals, handle)
}

// awaitResponse skips every signal except the Response on handle.
func awaitResponse(ctx context.Context, signals <-chan *dbus.Signal, handle dbus.ObjectPath) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case sig, ok := <-signals:
			if !ok {
				return "", fmt.Errorf("connection closed while waiting for portal")
			}
			if sig.Path != handle || sig.Name != portalRequest+"."+responseMember {
				continue
			}
			return parseResponse(sig.Body)
		}
	}
}

// requestPath returns the Request object path the portal uses for a caller
// with unique name sender and the given handle token.
func requestPath(sender, token string) dbus.ObjectPath {
	s := strings.ReplaceAll(strings.TrimPrefix(sender, ":"), ".", "_")
	return dbus.ObjectPath("/org/freedesktop/portal/desktop/request/" + s + "/" + token)
}

// parseResponse decodes a Request.Response(u response, a{sv} results) body.
func parseResponse(body []any) (string, error) {
	if len(body) < 2 {
		return "", fmt.Errorf("malformed portal response")
	}
	code, ok := body[0].(uint32)
	if !ok {
		return "", fmt.Errorf("invalid response code type")
	}
	if code != responseSuccess {
		return "", nil
	}
	results, _ := body[1].(map[string]dbus.Variant)
	uris, _ := results["uris"].Value().([]string)
	if len(uris) == 0 {
		return "", nil
	}
	return uriToPath(uris[0])
}

// uriToPath converts a file:// URI to a local path.
func uriToPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid uri %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported uri scheme %q", u.Scheme)
	}
	return u.Path, nil
}

// pathToURI converts a local path to a file:// URI.
func pathToURI(path string) string {
	return (&url.URL{Scheme: "file", Path: path}).String()
}
