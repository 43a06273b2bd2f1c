// Package webserver contains the HTTP API of Tessella. It accepts photo
// uploads, returns previews of the patterns in every style and produces the
// final export packs.
package webserver

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/tessella/tessella/src/config"
	"github.com/tessella/tessella/src/export"
	"github.com/tessella/tessella/src/grid"
	"github.com/tessella/tessella/src/jobs"
	"github.com/tessella/tessella/src/palette"
	"github.com/tessella/tessella/src/pipeline"
	"github.com/tessella/tessella/src/webserver/webutils"
)

// Processor runs the conversion of prepared images into symbol grids.
// *pipeline.Runner satisfies it.
type Processor interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
	RunStyles(
		ctx context.Context,
		source *grid.PixelBuffer,
		palettes []*palette.Palette,
		opts pipeline.Options,
		tiles pipeline.TileSize,
	) ([]*pipeline.Result, error)
}

// Server represents our webserver. It will be controlled from here.
type Server struct {

	// Configuration of this server
	cfg config.Config

	// WG used in Server.Wait to sync with server's end
	wg sync.WaitGroup

	// Makes sure Serve does not return before all the starting work ha been finished
	startWG sync.WaitGroup

	// The actual http.Server doing the HTTP work
	httpSrv *http.Server

	// The server's net.Listener. Used in the Server.Stop func
	listener net.Listener

	// Guards listener and httpSrv.
	mtx sync.Mutex

	store     jobs.Store
	processor Processor
	palettes  *palette.Registry
}

// NewServer returns a new Server using the supplied configuration cfg. The
// returned server is ready and calling its Serve method will start it.
func NewServer(
	cfg config.Config,
	store jobs.Store,
	processor Processor,
	palettes *palette.Registry,
) *Server {
	return &Server{
		cfg:       cfg,
		store:     store,
		processor: processor,
		palettes:  palettes,
	}
}

// Handler returns the handler of every API endpoint together with the gzip
// and authentication middleware the configuration asks for.
func (srv *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.StrictSlash(true)

	router.Handle(EndpointHealth, NewHealthHandler()).Methods(http.MethodGet)

	link := assemblyLink(srv.cfg, srv.cfg.Brand.URLBase)
	handlers := map[string]http.Handler{
		APIv1EndpointPalettes: NewPalettesHandler(srv.palettes),
		APIv1EndpointPreview: NewPreviewHandler(
			srv.cfg, srv.store, srv.processor, srv.palettes,
		),
		APIv1EndpointFinal: NewFinalHandler(
			srv.cfg, srv.store, srv.processor, srv.palettes,
		),
		APIv1EndpointJob:        NewDeleteJobHandler(srv.store),
		APIv1EndpointJobQR:      NewQRHandler(srv.store, link),
		APIv1EndpointJobPreview: NewJobPreviewHandler(srv.store, srv.palettes),
		APIv1EndpointJobTile: NewTileHandler(
			srv.store, srv.palettes, srv.cfg.Tiles,
		),
		APIv1EndpointLoginToken: NewLoginTokenHandler(srv.cfg.Authenticate),
	}

	for path, handler := range handlers {
		router.Handle(path, handler).Methods(APIv1Methods[path]...)
	}

	router.NotFoundHandler = http.HandlerFunc(notFound)

	var handler http.Handler = router

	if srv.cfg.Gzip {
		handler = NewGzipHandler(handler, []string{APIv1EndpointFinal})
	}

	if srv.cfg.Auth {
		handler = NewAuthHandler(
			handler,
			srv.cfg.Authenticate.User,
			srv.cfg.Authenticate.Password,
			srv.cfg.Authenticate.Secret,
			[]string{EndpointHealth, APIv1EndpointLoginToken},
		)
	}

	return handler
}

// Serve actually starts the webserver. It attaches all the handlers
// and starts the webserver while consulting the configuration. Trying to call
// this method more than once for the same server will result in panic.
func (srv *Server) Serve() {
	srv.mtx.Lock()
	if srv.httpSrv != nil {
		srv.mtx.Unlock()
		panic("Second Server.Serve call for the same server")
	}

	srv.httpSrv = &http.Server{
		Addr:           srv.cfg.Listen,
		Handler:        srv.Handler(),
		ReadTimeout:    time.Duration(srv.cfg.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(srv.cfg.WriteTimeout) * time.Second,
		MaxHeaderBytes: srv.cfg.MaxHeadersSize,
	}
	srv.mtx.Unlock()

	srv.wg.Add(1)
	srv.startWG.Add(1)
	go srv.serveGoroutine()
	srv.startWG.Wait()
}

func (srv *Server) serveGoroutine() {
	defer srv.wg.Done()

	var reason error

	if srv.cfg.SSL {
		reason = srv.listenAndServeTLS(srv.cfg.SSLCertificate.Crt,
			srv.cfg.SSLCertificate.Key)
	} else {
		reason = srv.listenAndServe()
	}

	log.Println("Webserver stopped.")

	if reason != nil && !errors.Is(reason, http.ErrServerClosed) {
		log.Printf("Reason: %s\n", reason.Error())
	}
}

// Uses our own listener to make our server stoppable. Similar to
// net.http.Server.ListenAndServer only this version saves a reference to the listener
func (srv *Server) listenAndServe() error {
	addr := srv.httpSrv.Addr
	if addr == "" {
		addr = ":http"
	}
	lsn, err := net.Listen("tcp", addr)
	if err != nil {
		srv.startWG.Done()
		return err
	}
	return srv.serveListener(lsn)
}

// Uses our own listener to make our server stoppable. Similar to
// net.http.Server.ListenAndServerTLS only this version saves a reference
// to the listener
func (srv *Server) listenAndServeTLS(certFile, keyFile string) error {
	addr := srv.httpSrv.Addr
	if addr == "" {
		addr = ":https"
	}
	config := &tls.Config{
		NextProtos: []string{"http/1.1"},
		MinVersion: tls.VersionTLS12,
	}

	var err error
	config.Certificates = make([]tls.Certificate, 1)
	config.Certificates[0], err = tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		srv.startWG.Done()
		return err
	}

	conn, err := net.Listen("tcp", addr)
	if err != nil {
		srv.startWG.Done()
		return err
	}

	return srv.serveListener(tls.NewListener(conn, config))
}

func (srv *Server) serveListener(lsn net.Listener) error {
	srv.mtx.Lock()
	srv.listener = lsn
	srv.mtx.Unlock()

	log.Printf("Webserver started on %s.\n", lsn.Addr())
	srv.startWG.Done()
	return srv.httpSrv.Serve(lsn)
}

// Addr returns the address the server listens on. It is nil before Serve and
// after Stop.
func (srv *Server) Addr() net.Addr {
	srv.mtx.Lock()
	defer srv.mtx.Unlock()

	if srv.listener == nil {
		return nil
	}
	return srv.listener.Addr()
}

// Stop stops the webserver. Requests in flight are given until ctx is done
// to finish.
func (srv *Server) Stop(ctx context.Context) {
	srv.mtx.Lock()
	defer srv.mtx.Unlock()

	if srv.httpSrv == nil || srv.listener == nil {
		return
	}

	if err := srv.httpSrv.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down the webserver: %s\n", err)
		srv.httpSrv.Close()
	}
	srv.listener = nil
}

// Wait syncs whoever called this with the server's stop.
func (srv *Server) Wait() {
	srv.wg.Wait()
}

// assemblyLink returns the creator of the links printed on covers. The links
// are signed when the API has a secret.
func assemblyLink(cfg config.Config, urlBase string) export.AssemblyLink {
	return export.AssemblyLink{
		URLBase: urlBase,
		Secret:  cfg.Authenticate.Secret,
		TTL:     export.DefaultTokenTTL,
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	webutils.JSONError(w, "not found", http.StatusNotFound)
}
