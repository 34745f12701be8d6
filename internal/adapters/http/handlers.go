package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"communityaction/internal/adapters/http/middleware"
	"communityaction/internal/application/orchestrators"
	"communityaction/internal/application/projections"
	"communityaction/internal/domain/enrollment"
	"communityaction/internal/domain/identity"
	"communityaction/internal/domain/program"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

//go:embed templates/*.html
var templateFS embed.FS

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	email := ""
	if ok {
		role = sess.Role
		email = sess.Email
	}

	funcMap := template.FuncMap{
		"currentRole":  func() string { return role },
		"currentEmail": func() string { return email },
		"isLoggedIn":   func() bool { return role != "" },
		"csrfToken":    func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS,
		"templates/layout.html", "templates/"+templateName)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/plugins/direct", handleDirectRequest)
	mux.HandleFunc("/surveys/settings", handleSurveySettings)
	mux.HandleFunc("/admin/menu", handleAdminMenu)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/healthz", handleHealthz)
}

// actionFunc is a handler for one exposed admin action.
type actionFunc func(w http.ResponseWriter, r *http.Request)

// exposedActions is the full set of actions reachable through /plugins/direct.
// Dispatch is by map lookup only. An action not listed here cannot be invoked,
// no matter what the request names.
var exposedActions = map[string]actionFunc{
	"managePrograms": actionManagePrograms,
}

// handleDirectRequest dispatches /plugins/direct requests to exposed actions.
// Authorization happens before dispatch: anonymous and non-superadmin callers
// are redirected to /login without learning whether the action exists.
func handleDirectRequest(w http.ResponseWriter, r *http.Request) {
	principal := identity.Principal{}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		principal.UserID = sess.AccountID
	}

	if !gate.IsAuthorized(r.Context(), principal) {
		slog.Warn("direct_request_denied", "user_id", principal.UserID, "path", r.URL.Path)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	action := r.URL.Query().Get("action")
	if action == "" && r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		action = r.FormValue("action")
	}

	fn, ok := exposedActions[action]
	if !ok {
		slog.Warn("direct_request_unknown_action", "action", action)
		http.Error(w, fmt.Sprintf("unknown action %q", action), http.StatusBadRequest)
		return
	}

	fn(w, r)
}

// actionManagePrograms handles the program management screen: GET lists
// programs, POST adds one. A duplicate name is reported as a notice on the
// re-rendered list rather than an error page.
func actionManagePrograms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	notice := ""

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		name := r.FormValue("program")

		deps := orchestrators.AddProgramDeps{ProgramStore: stores.ProgramStore}
		added, err := orchestrators.ExecuteAddProgram(ctx, deps, name)
		switch {
		case errors.Is(err, program.ErrDuplicateName):
			notice = fmt.Sprintf("The program %q already exists.", strings.TrimSpace(name))
		case errors.Is(err, program.ErrEmptyName):
			notice = "A program name is required."
		case err != nil:
			internalError(w, err)
			return
		default:
			notice = fmt.Sprintf("Added program **%s**.", added.Name)
		}
	}

	deps := projections.ManageProgramsDeps{ProgramStore: stores.ProgramStore}
	result, err := projections.QueryManagePrograms(ctx, deps)
	if err != nil {
		internalError(w, err)
		return
	}
	result.Notice = notice

	if isHTMLRequest(r) || r.Method == "POST" {
		renderTemplate(w, r, "manage_programs.html", map[string]any{
			"Programs":  result.Programs,
			"Form":      result.Form,
			"Notice":    result.Notice,
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// settingsPayload is the JSON shape of a settings save event.
type settingsPayload struct {
	Survey   int64             `json:"survey"`
	Settings map[string]string `json:"settings"`
}

// formMetaFields are form fields that carry request plumbing, not survey
// settings. They are stripped before the settings map is applied.
var formMetaFields = map[string]bool{
	"survey":             true,
	"action":             true,
	"gorilla.csrf.Token": true,
}

// handleSurveySettings serves the per-survey settings panel.
// GET returns the settings descriptor for the survey, including the program
// enrollment select. POST applies a settings map, routing the enrollment key
// to the enrollment store and everything else to the generic setting store.
func handleSurveySettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal := identity.Principal{}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		principal.UserID = sess.AccountID
	}
	if !gate.IsAuthorized(ctx, principal) {
		slog.Warn("survey_settings_denied", "user_id", principal.UserID)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		surveyID, err := strconv.ParseInt(r.URL.Query().Get("survey"), 10, 64)
		if err != nil || surveyID <= 0 {
			http.Error(w, "invalid survey id", http.StatusBadRequest)
			return
		}

		deps := projections.SurveySettingsDeps{
			ProgramStore:    stores.ProgramStore,
			EnrollmentStore: stores.EnrollmentStore,
		}
		descriptor, err := projections.QuerySurveySettingsDescriptor(ctx, deps, surveyID)
		if err != nil {
			internalError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(descriptor)
		return
	}

	if r.Method == "POST" {
		var surveyID int64
		settings := map[string]string{}

		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			var payload settingsPayload
			if err := strictDecode(r, &payload); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			surveyID = payload.Survey
			settings = payload.Settings
		} else {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			id, err := strconv.ParseInt(r.FormValue("survey"), 10, 64)
			if err != nil {
				http.Error(w, "invalid survey id", http.StatusBadRequest)
				return
			}
			surveyID = id
			for key, values := range r.PostForm {
				if formMetaFields[key] || len(values) == 0 {
					continue
				}
				settings[key] = values[0]
			}
		}

		if surveyID <= 0 {
			http.Error(w, "invalid survey id", http.StatusBadRequest)
			return
		}

		deps := orchestrators.ApplySurveySettingsDeps{
			EnrollmentStore: stores.EnrollmentStore,
			SettingStore:    stores.SettingStore,
		}
		if err := orchestrators.ExecuteApplySurveySettings(ctx, deps, surveyID, settings); err != nil {
			if errors.Is(err, enrollment.ErrEmptyProgramName) || errors.Is(err, enrollment.ErrInvalidSurveyID) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			internalError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "saved"})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleAdminMenu returns the admin menu entries for the current caller.
// Callers without the required role get an empty list, not an error.
func handleAdminMenu(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	principal := identity.Principal{}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		principal.UserID = sess.AccountID
	}

	deps := projections.AdminMenuDeps{Gate: gate}
	items := projections.QueryAdminMenu(r.Context(), deps, principal)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/plugins/direct?action=managePrograms", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		deps := orchestrators.LoginDeps{AccountStore: stores.AccountStore}
		acct, err := orchestrators.ExecuteLogin(r.Context(), deps, r.FormValue("Email"), r.FormValue("Password"))
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     "Invalid email or password.",
			})
			return
		}

		token, err := sessions.Create(acct.ID, acct.Email, acct.Role)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		middleware.SetSessionCookie(w, token)
		http.Redirect(w, r, "/plugins/direct?action=managePrograms", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}
