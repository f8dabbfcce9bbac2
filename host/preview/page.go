package preview

import "net/http"

const indexHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>easel preview</title>
<style>
html, body { margin: 0; height: 100%; background: #000; overflow: hidden; }
#frame { position: absolute; image-rendering: pixelated; }
</style>
</head>
<body>
<img id="frame" alt="">
<script>
const img = document.getElementById("frame");
const post = (ev) => fetch("/api/v1/events", {
  method: "POST",
  headers: {"Content-Type": "application/json"},
  body: JSON.stringify(ev),
});
const place = async () => {
  const res = await fetch("/api/v1/viewport");
  const v = await res.json();
  img.style.left = v.placement.left + "px";
  img.style.top = v.placement.top + "px";
  img.style.width = v.placement.width + "px";
  img.style.height = v.placement.height + "px";
};
const resize = async () => {
  await post({type: "resize", width: window.innerWidth, height: window.innerHeight});
  await place();
};
window.addEventListener("resize", resize);
window.addEventListener("pointermove", (e) => post({type: "pointermove", x: e.clientX, y: e.clientY}));
window.addEventListener("keydown", (e) => { post({type: "keydown", code: e.code}); e.preventDefault(); });
window.addEventListener("keyup", (e) => post({type: "keyup", code: e.code}));
const refresh = () => {
  const next = new Image();
  next.onload = () => { img.src = next.src; requestAnimationFrame(refresh); };
  next.onerror = () => setTimeout(refresh, 500);
  next.src = "/frame.png?t=" + Date.now();
};
resize().then(refresh);
</script>
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}
