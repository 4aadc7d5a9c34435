package main

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/lanikai/alphamask"
	"github.com/lanikai/alphamask/internal/media"
	"github.com/lanikai/alphamask/internal/video"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// formatMessage announces the frame geometry to preview clients.
type formatMessage struct {
	Type   string `json:"type"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// hub fans combined frames out to the connected preview pages. It is the
// element's sink: SetFormat, Push, and PushEvent arrive on the video path's
// goroutine, client registration on HTTP handler goroutines. The mutex also
// serializes writes to each connection.
type hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	format  *formatMessage
}

func newHub() *hub {
	return &hub{clients: make(map[*websocket.Conn]bool)}
}

func (h *hub) SetFormat(info video.Info) error {
	msg := &formatMessage{
		Type:   "format",
		Format: info.Format.String(),
		Width:  info.Width,
		Height: info.Height,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.format = msg
	for ws := range h.clients {
		if err := ws.WriteJSON(msg); err != nil {
			h.drop(ws)
		}
	}
	return nil
}

func (h *hub) Push(buf *media.Buffer) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ws := range h.clients {
		if err := ws.WriteMessage(websocket.BinaryMessage, buf.Data); err != nil {
			h.drop(ws)
		}
	}
	return nil
}

func (h *hub) PushEvent(ev alphamask.Event) error {
	if ev.Kind != alphamask.EventEOS {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ws := range h.clients {
		ws.WriteJSON(map[string]string{"type": "eos"})
	}
	return nil
}

// drop removes a dead client. Callers hold mu.
func (h *hub) drop(ws *websocket.Conn) {
	delete(h.clients, ws)
	ws.Close()
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ws := range h.clients {
		h.drop(ws)
	}
}

// websocketHandler upgrades the connection and streams frames to it until
// the client goes away.
func (h *hub) websocketHandler(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("upgrade: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[ws] = true
	if h.format != nil {
		ws.WriteJSON(h.format)
	}
	h.mu.Unlock()
	log.Info("preview client %s connected", ws.RemoteAddr())

	// Drain (and ignore) client messages to notice the close.
	for {
		if _, _, err := ws.NextReader(); err != nil {
			break
		}
	}

	h.mu.Lock()
	h.drop(ws)
	h.mu.Unlock()
	log.Info("preview client %s gone", ws.RemoteAddr())
}

// indexHandler serves the inline preview page.
func (h *hub) indexHandler(w http.ResponseWriter, r *http.Request) {
	t := template.Must(template.New("index").Parse(index))
	t.Execute(w, nil)
}

const index = `<!DOCTYPE html>
<html>
<head>
<title>alphamask preview</title>
<style>
body { background: #222; color: #ddd; font-family: monospace; text-align: center; }
canvas {
	margin-top: 2em;
	background: repeating-conic-gradient(#666 0 25%, #999 0 50%) 0 0 / 16px 16px;
}
</style>
</head>
<body>
<h3>alphamask preview</h3>
<canvas id="view"></canvas>
<p id="status">connecting...</p>
<script>
var canvas = document.getElementById("view");
var status = document.getElementById("status");
var ctx = canvas.getContext("2d");
var img = null, format = null, width = 0, height = 0;

var ws = new WebSocket("ws://" + location.host + "/ws");
ws.binaryType = "arraybuffer";

ws.onopen = function () { status.textContent = "waiting for frames"; };
ws.onclose = function () { status.textContent = "disconnected"; };

ws.onmessage = function (ev) {
	if (typeof ev.data === "string") {
		var msg = JSON.parse(ev.data);
		if (msg.type === "format") {
			format = msg.format;
			width = msg.width;
			height = msg.height;
			canvas.width = width;
			canvas.height = height;
			img = ctx.createImageData(width, height);
			status.textContent = format + " " + width + "x" + height;
		} else if (msg.type === "eos") {
			status.textContent = "end of stream";
		}
		return;
	}
	if (img) {
		draw(new Uint8Array(ev.data));
	}
};

function clamp(v) { return v < 0 ? 0 : v > 255 ? 255 : v; }

function yuv(dst, j, y, u, v, a) {
	u -= 128;
	v -= 128;
	dst[j] = clamp(y + 1.402 * v);
	dst[j + 1] = clamp(y - 0.344 * u - 0.714 * v);
	dst[j + 2] = clamp(y + 1.772 * u);
	dst[j + 3] = a;
}

function draw(src) {
	var dst = img.data;
	var i, j, x, y;
	if (format === "ARGB") {
		for (i = 0, j = 0; j < dst.length; i += 4, j += 4) {
			dst[j] = src[i + 1];
			dst[j + 1] = src[i + 2];
			dst[j + 2] = src[i + 3];
			dst[j + 3] = src[i];
		}
	} else if (format === "AYUV") {
		for (i = 0, j = 0; j < dst.length; i += 4, j += 4) {
			yuv(dst, j, src[i + 1], src[i + 2], src[i + 3], src[i]);
		}
	} else if (format === "A420") {
		var cw = (width + 1) >> 1;
		var ch = (height + 1) >> 1;
		var uOff = width * height;
		var vOff = uOff + cw * ch;
		var aOff = vOff + cw * ch;
		for (y = 0, j = 0; y < height; y++) {
			for (x = 0; x < width; x++, j += 4) {
				var c = (y >> 1) * cw + (x >> 1);
				yuv(dst, j, src[y * width + x], src[uOff + c], src[vOff + c],
					src[aOff + y * width + x]);
			}
		}
	} else {
		return;
	}
	ctx.putImageData(img, 0, 0);
}
</script>
</body>
</html>`
