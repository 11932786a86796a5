package webd

import (
	ghandlers "github.com/gorilla/handlers"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
)

func permissiveCorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Add("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept")
		next.ServeHTTP(w, r)
	})
}

func contentTypeMiddlewareFunc(contentType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", contentType)
			next.ServeHTTP(w, r)
		})
	}
}

// buildCommonLogLine builds a log entry in Apache Common Log Format,
// with any X-Forwarded-For hops appended to the remote host.
func buildCommonLogLine(p ghandlers.LogFormatterParams) []byte {
	req := p.Request
	username := "-"
	if p.URL.User != nil {
		if name := p.URL.User.Username(); name != "" {
			username = name
		}
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		host = req.RemoteAddr
	}
	for _, v := range req.Header.Values("X-Forwarded-For") {
		host += "->" + v
	}

	uri := req.RequestURI
	if req.ProtoMajor == 2 && req.Method == http.MethodConnect {
		uri = req.Host
	}
	if uri == "" {
		uri = p.URL.RequestURI()
	}
	// Quote and strip the surrounding quotes, escaping control characters.
	quoted := strconv.Quote(uri)

	buf := make([]byte, 0, len(host)+len(username)+len(req.Method)+len(quoted)+len(req.Proto)+64)
	buf = append(buf, host...)
	buf = append(buf, " - "...)
	buf = append(buf, username...)
	buf = append(buf, " ["...)
	buf = append(buf, p.TimeStamp.Format("02/Jan/2006:15:04:05 -0700")...)
	buf = append(buf, `] "`...)
	buf = append(buf, req.Method...)
	buf = append(buf, " "...)
	buf = append(buf, quoted[1:len(quoted)-1]...)
	buf = append(buf, " "...)
	buf = append(buf, req.Proto...)
	buf = append(buf, `" `...)
	buf = append(buf, strconv.Itoa(p.StatusCode)...)
	buf = append(buf, " "...)
	buf = append(buf, strconv.Itoa(p.Size)...)
	return buf
}

func writeLog(writer io.Writer, p ghandlers.LogFormatterParams) {
	buf := buildCommonLogLine(p)
	buf = append(buf, '\n')
	_, _ = writer.Write(buf)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return ghandlers.CustomLoggingHandler(os.Stdout, next, writeLog)
}
