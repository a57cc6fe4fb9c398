// Package router wires the HTTP route surface: it parses requests, asks the
// service layer for a decision and translates the outcome into a redirect,
// a rendered page or a status with a short message.
package router

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tinyapp/linkshrt/internal/authz"
	"github.com/tinyapp/linkshrt/internal/gzippedhttp"
	"github.com/tinyapp/linkshrt/internal/links"
	"github.com/tinyapp/linkshrt/internal/logger"
	"github.com/tinyapp/linkshrt/internal/service"
	"github.com/tinyapp/linkshrt/internal/session"
	"github.com/tinyapp/linkshrt/internal/users"
	"github.com/tinyapp/linkshrt/internal/view"
)

// Messages shown to the user. The wording follows the application's
// user-facing texts.
const (
	msgLoginToViewURLs    = "Please log in or register to view URLs."
	msgLoginToViewDetails = "Please log in to view URL details."
	msgLoginToShorten     = "You must be logged in to shorten a URL."
	msgLoginToEdit        = "You must be logged in to edit long URLs."
	msgLoginToDelete      = "You must be logged in to delete URLs."
	msgNotYourURLView     = "This URL does not belong to you!"
	msgNotYourURLUpdate   = "You cannot update an URL that does not belong to you."
	msgNotYourURLDelete   = "You cannot delete an URL that does not belong to you."
	msgShortURLNotFound   = "Short URL not found."
	msgMissingFields      = "You must provide both an email and a password."
	msgEmailTaken         = "Email already exists. Proceed to login or try again."
	msgBadCredentials     = "Email or password is incorrect."
)

// Router translates HTTP traffic into service calls.
type Router struct {
	service  *service.Service
	sessions *session.Sessions
	pages    *view.View
}

// New builds the chi mux with the logging, identity and compression
// middleware and every application route.
func New(svc *service.Service, sessions *session.Sessions, pages *view.View) http.Handler {
	r := &Router{
		service:  svc,
		sessions: sessions,
		pages:    pages,
	}

	mux := chi.NewRouter()
	mux.Use(logger.WithLoggingHTTPMiddleware)
	mux.Use(sessions.WithIdentity)
	mux.Use(gzippedhttp.GzipResponse)

	mux.Get(`/`, r.getRoot)
	mux.Get(`/urls`, r.getURLs)
	mux.Get(`/urls.json`, r.getURLsJSON)
	mux.Get(`/urls/new`, r.getURLsNew)
	mux.Get(`/urls/{id}`, r.getURLDetails)
	mux.Get(`/u/{id}`, r.getRedirectToLongURL)
	mux.Post(`/urls`, r.postURLs)
	mux.Post(`/urls/{id}/update`, r.postURLUpdate)
	mux.Post(`/urls/{id}/delete`, r.postURLDelete)
	mux.Get(`/login`, r.getLogin)
	mux.Get(`/register`, r.getRegister)
	mux.Post(`/login`, r.postLogin)
	mux.Post(`/register`, r.postRegister)
	mux.Post(`/logout`, r.postLogout)

	return mux
}

func (r *Router) getRoot(response http.ResponseWriter, request *http.Request) {
	if r.service.CurrentUser(request.Context()) == nil {
		http.Redirect(response, request, "/login", http.StatusFound)

		return
	}

	http.Redirect(response, request, "/urls", http.StatusFound)
}

func (r *Router) getURLs(response http.ResponseWriter, request *http.Request) {
	currentUser := r.service.CurrentUser(request.Context())

	owned, err := r.service.ListUserLinks(request.Context(), currentUser)
	if err != nil {
		if errors.Is(err, authz.ErrUnauthenticated) {
			plainMessage(response, http.StatusOK, msgLoginToViewURLs)

			return
		}
		r.internalError(response, err)

		return
	}

	data := view.IndexData{Page: view.Page{User: currentUser}}
	for _, link := range owned {
		data.Links = append(data.Links, view.NewLinkItem(link.Link, link.ShortURL))
	}

	r.renderPage(response, http.StatusOK, "urls_index", data)
}

func (r *Router) getURLsJSON(response http.ResponseWriter, request *http.Request) {
	currentUser := r.service.CurrentUser(request.Context())

	owned, err := r.service.ListUserLinks(request.Context(), currentUser)
	if err != nil {
		if errors.Is(err, authz.ErrUnauthenticated) {
			plainMessage(response, http.StatusUnauthorized, msgLoginToViewURLs)

			return
		}
		r.internalError(response, err)

		return
	}

	type userURL struct {
		ShortURL    string `json:"short_url"`
		OriginalURL string `json:"original_url"`
	}
	result := make([]userURL, 0, len(owned))
	for _, link := range owned {
		result = append(result, userURL{ShortURL: link.ShortURL, OriginalURL: link.LongURL})
	}

	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(response).Encode(result); err != nil {
		logger.Log.Debugln("Error writing response in JSON: ", zap.Error(err))
	}
}

func (r *Router) getURLsNew(response http.ResponseWriter, request *http.Request) {
	currentUser := r.service.CurrentUser(request.Context())
	if currentUser == nil {
		http.Redirect(response, request, "/login", http.StatusFound)

		return
	}

	r.renderPage(response, http.StatusOK, "urls_new", view.Page{User: currentUser})
}

func (r *Router) getURLDetails(response http.ResponseWriter, request *http.Request) {
	currentUser := r.service.CurrentUser(request.Context())
	short := chi.URLParam(request, "id")

	owned, err := r.service.GetLinkDetail(request.Context(), currentUser, short)
	if err != nil {
		switch {
		case errors.Is(err, authz.ErrUnauthenticated):
			plainMessage(response, http.StatusOK, msgLoginToViewDetails)
		case errors.Is(err, links.ErrNotFound):
			plainMessage(response, http.StatusNotFound, msgShortURLNotFound)
		case errors.Is(err, authz.ErrForbidden):
			plainMessage(response, http.StatusForbidden, msgNotYourURLView)
		default:
			r.internalError(response, err)
		}

		return
	}

	data := view.ShowData{
		Page: view.Page{User: currentUser},
		Link: view.NewLinkItem(owned.Link, owned.ShortURL),
	}
	r.renderPage(response, http.StatusOK, "urls_show", data)
}

func (r *Router) getRedirectToLongURL(response http.ResponseWriter, request *http.Request) {
	short := chi.URLParam(request, "id")

	longURL, err := r.service.ResolveRedirect(request.Context(), short)
	if err != nil {
		plainMessage(response, http.StatusNotFound, msgShortURLNotFound)

		return
	}

	http.Redirect(response, request, longURL, http.StatusFound)
}

func (r *Router) postURLs(response http.ResponseWriter, request *http.Request) {
	currentUser := r.service.CurrentUser(request.Context())
	longURL := request.PostFormValue("longURL")

	link, err := r.service.CreateLink(request.Context(), currentUser, longURL)
	if err != nil {
		if errors.Is(err, authz.ErrUnauthenticated) {
			plainMessage(response, http.StatusForbidden, msgLoginToShorten)

			return
		}
		r.internalError(response, err)

		return
	}

	http.Redirect(response, request, "/urls/"+link.ShortID, http.StatusFound)
}

func (r *Router) postURLUpdate(response http.ResponseWriter, request *http.Request) {
	currentUser := r.service.CurrentUser(request.Context())
	short := chi.URLParam(request, "id")
	updatedLongURL := request.PostFormValue("updatedLongURL")

	err := r.service.UpdateLink(request.Context(), currentUser, short, updatedLongURL)
	if err != nil {
		switch {
		case errors.Is(err, authz.ErrUnauthenticated):
			plainMessage(response, http.StatusForbidden, msgLoginToEdit)
		case errors.Is(err, links.ErrNotFound):
			plainMessage(response, http.StatusNotFound, msgShortURLNotFound)
		case errors.Is(err, authz.ErrForbidden):
			plainMessage(response, http.StatusForbidden, msgNotYourURLUpdate)
		default:
			r.internalError(response, err)
		}

		return
	}

	http.Redirect(response, request, "/urls", http.StatusFound)
}

func (r *Router) postURLDelete(response http.ResponseWriter, request *http.Request) {
	currentUser := r.service.CurrentUser(request.Context())
	short := chi.URLParam(request, "id")

	err := r.service.DeleteLink(request.Context(), currentUser, short)
	if err != nil {
		switch {
		case errors.Is(err, authz.ErrUnauthenticated):
			plainMessage(response, http.StatusForbidden, msgLoginToDelete)
		case errors.Is(err, links.ErrNotFound):
			plainMessage(response, http.StatusNotFound, msgShortURLNotFound)
		case errors.Is(err, authz.ErrForbidden):
			plainMessage(response, http.StatusForbidden, msgNotYourURLDelete)
		default:
			r.internalError(response, err)
		}

		return
	}

	http.Redirect(response, request, "/urls", http.StatusFound)
}

func (r *Router) getLogin(response http.ResponseWriter, request *http.Request) {
	if r.service.CurrentUser(request.Context()) != nil {
		http.Redirect(response, request, "/urls", http.StatusFound)

		return
	}

	r.renderPage(response, http.StatusOK, "login", view.Page{})
}

func (r *Router) getRegister(response http.ResponseWriter, request *http.Request) {
	if r.service.CurrentUser(request.Context()) != nil {
		http.Redirect(response, request, "/urls", http.StatusFound)

		return
	}

	r.renderPage(response, http.StatusOK, "register", view.Page{})
}

func (r *Router) postRegister(response http.ResponseWriter, request *http.Request) {
	email := request.PostFormValue("email")
	password := request.PostFormValue("password")

	usr, err := r.service.Register(request.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrEmptyCredentials):
			plainMessage(response, http.StatusBadRequest, msgMissingFields)
		case errors.Is(err, users.ErrEmailTaken):
			plainMessage(response, http.StatusBadRequest, msgEmailTaken)
		default:
			r.internalError(response, err)
		}

		return
	}

	if err := r.sessions.Issue(response, usr.ID); err != nil {
		r.internalError(response, err)

		return
	}

	http.Redirect(response, request, "/urls", http.StatusFound)
}

func (r *Router) postLogin(response http.ResponseWriter, request *http.Request) {
	email := request.PostFormValue("email")
	password := request.PostFormValue("password")

	usr, err := r.service.Login(request.Context(), email, password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			plainMessage(response, http.StatusForbidden, msgBadCredentials)

			return
		}
		r.internalError(response, err)

		return
	}

	if err := r.sessions.Issue(response, usr.ID); err != nil {
		r.internalError(response, err)

		return
	}

	http.Redirect(response, request, "/urls", http.StatusFound)
}

func (r *Router) postLogout(response http.ResponseWriter, request *http.Request) {
	r.sessions.Clear(response)
	http.Redirect(response, request, "/login", http.StatusFound)
}

func (r *Router) renderPage(response http.ResponseWriter, status int, name string, data interface{}) {
	if err := r.pages.Render(response, status, name, data); err != nil {
		logger.Log.Debugln("Error rendering page template: ", zap.Error(err))
	}
}

func (r *Router) internalError(response http.ResponseWriter, err error) {
	logger.Log.Debugln("Unexpected handler error: ", zap.Error(err))
	plainMessage(response, http.StatusInternalServerError, "Something went wrong.")
}

func plainMessage(response http.ResponseWriter, status int, message string) {
	response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	response.WriteHeader(status)
	if _, err := response.Write([]byte(message)); err != nil {
		logger.Log.Debugln("Error writing body: ", zap.Error(err))
	}
}
