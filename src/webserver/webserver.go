// Package webserver contains the webserver which deals with processing requests
// from the user, presenting him with the interface of the application.
package webserver

import (
	"context"
	"crypto/tls"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/ironsmile/aoede/src/catalog"
	"github.com/ironsmile/aoede/src/config"
	"github.com/ironsmile/aoede/src/playlists"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . CatalogSource

// CatalogSource is where the webserver gets the current catalog from. Since
// catalogs are immutable, every scan publishes a brand new one and handlers
// obtain the current catalog once per request. Catalog returns nil while no
// scan has finished yet.
type CatalogSource interface {
	Catalog() *catalog.Catalog
}

// Server represents our webserver. It will be controlled from here
type Server struct {

	// Configuration of this server
	cfg config.Config

	// WG used in Server.Wait to sync with server's end
	wg sync.WaitGroup

	// Makes sure Serve does not return before all the starting work has been finished
	startWG sync.WaitGroup

	// The actual http.Server doing the HTTP work
	httpSrv *http.Server

	// The server's net.Listener. Used in the Server.Stop func
	listener net.Listener

	// Source for the current media catalog
	catalogs CatalogSource

	// Durable playlists storage
	playlister playlists.Playlister
}

// Serve actually starts the webserver. It attaches all the handlers
// and starts the webserver while consulting the configuration supplied. Trying to call
// this method more than once for the same server will result in panic.
func (srv *Server) Serve() {
	if srv.listener != nil {
		panic("Second Server.Serve call for the same server")
	}
	srv.wg.Add(1)
	srv.startWG.Add(1)
	go srv.serveGoroutine()
	srv.startWG.Wait()
}

func (srv *Server) serveGoroutine() {
	defer srv.wg.Done()

	handler := NewRouter(srv.catalogs, srv.playlister)

	if srv.cfg.Gzip {
		log.Println("Adding gzip handler")
		handler = NewGzipHandler(handler)
	}

	if srv.cfg.Auth {
		log.Println("Adding basic authenticate handler")
		handler = NewBasicAuthHandler(
			handler,
			srv.cfg.Authenticate.User,
			srv.cfg.Authenticate.Password,
		)
	}

	handler = NewTerryHandler(handler)

	srv.httpSrv = &http.Server{
		Addr:           srv.cfg.Listen,
		Handler:        handler,
		ReadTimeout:    time.Duration(srv.cfg.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(srv.cfg.WriteTimeout) * time.Second,
		MaxHeaderBytes: srv.cfg.MaxHeadersSize,
	}

	var reason error

	if srv.cfg.SSL {
		reason = srv.listenAndServeTLS(srv.cfg.SSLCertificate.Crt,
			srv.cfg.SSLCertificate.Key)
	} else {
		reason = srv.listenAndServe()
	}

	log.Println("Webserver stopped.")

	if reason != nil && reason != http.ErrServerClosed {
		log.Printf("Reason: %s\n", reason.Error())
	}
}

// Uses our own listener to make our server stoppable. Similar to
// net.http.Server.ListenAndServe only this version saves a reference to the listener
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
	srv.listener = lsn
	log.Println("Webserver started.")
	srv.startWG.Done()
	return srv.httpSrv.Serve(lsn)
}

// Uses our own listener to make our server stoppable. Similar to
// net.http.Server.ListenAndServeTLS only this version saves a reference
// to the listener
func (srv *Server) listenAndServeTLS(certFile, keyFile string) error {
	addr := srv.httpSrv.Addr
	if addr == "" {
		addr = ":https"
	}
	tlsCfg := &tls.Config{}
	if srv.httpSrv.TLSConfig != nil {
		*tlsCfg = *srv.httpSrv.TLSConfig
	}
	if tlsCfg.NextProtos == nil {
		tlsCfg.NextProtos = []string{"http/1.1"}
	}

	var err error
	tlsCfg.Certificates = make([]tls.Certificate, 1)
	tlsCfg.Certificates[0], err = tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		srv.startWG.Done()
		return err
	}

	conn, err := net.Listen("tcp", addr)
	if err != nil {
		srv.startWG.Done()
		return err
	}

	tlsListener := tls.NewListener(conn, tlsCfg)
	srv.listener = tlsListener
	log.Println("Webserver started.")
	srv.startWG.Done()
	return srv.httpSrv.Serve(tlsListener)
}

// Stop shuts down the webserver gracefully, waiting for any requests in
// flight to finish.
func (srv *Server) Stop() {
	if srv.httpSrv == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.httpSrv.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down the webserver: %s\n", err)
	}
	srv.listener = nil
}

// Wait syncs whoever called this with the server's stop
func (srv *Server) Wait() {
	srv.wg.Wait()
}

// NewServer returns a new Server using the supplied configuration cfg. The returned
// server is ready and calling its Serve method will start it.
func NewServer(
	cfg config.Config,
	catalogs CatalogSource,
	playlister playlists.Playlister,
) *Server {
	return &Server{
		cfg:        cfg,
		catalogs:   catalogs,
		playlister: playlister,
	}
}

// NewRouter returns the mux used for dispatching requests to the API handlers.
func NewRouter(catalogs CatalogSource, playlister playlists.Playlister) http.Handler {
	router := mux.NewRouter()
	router.StrictSlash(true)
	router.UseEncodedPath()

	endpoints := map[string]http.Handler{
		APIv1EndpointAbout:          NewAboutHandler(),
		APIv1EndpointArtists:        NewArtistsHandler(catalogs),
		APIv1EndpointArtist:         NewSingleArtistHandler(catalogs),
		APIv1EndpointAlbums:         NewAlbumsHandler(catalogs),
		APIv1EndpointAlbum:          NewSingleAlbumHandler(catalogs),
		APIv1EndpointGenres:         NewGenresHandler(catalogs),
		APIv1EndpointSongs:          NewSongsHandler(catalogs),
		APIv1EndpointSearchWithPath: NewSearchHandler(catalogs),
		APIv1EndpointSearch:         NewSearchHandler(catalogs),
		APIv1EndpointStats:          NewStatsHandler(catalogs),
		APIv1EndpointPlaylists:      NewPlaylistsHandler(playlister, catalogs),
		APIv1EndpointPlaylist:       NewSinglePlaylistHandler(playlister, catalogs),
	}

	for endpoint, handler := range endpoints {
		router.Handle(endpoint, handler).Methods(APIv1Methods[endpoint]...)
	}

	return router
}
