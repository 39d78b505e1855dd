package main

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"quickchat/internal/domain"
	"quickchat/internal/util/json"
)

const requestIDHeader = "X-Request-ID"

type serverConfig struct {
	PublicURL  string
	Secret     []byte
	TokenTTL   time.Duration
	BcryptCost int
}

// server holds the in-memory state behind the fiber routes.
type server struct {
	cfg      serverConfig
	log      *slog.Logger
	users    *userTable
	tokens   *tokenIssuer
	validate *validator.Validate

	mu    sync.RWMutex
	media map[string]storedFile
}

type storedFile struct {
	name string
	data []byte
}

// envelope is the backend's common response body.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// registerBody mirrors the client's wire body with the checks the hosted
// service applies.
type registerBody struct {
	FullName        string `json:"full_name" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	ProfileImage    string `json:"profile_image"`
}

func newServer(cfg serverConfig, log *slog.Logger) *fiber.App {
	s := &server{
		cfg:      cfg,
		log:      log,
		users:    newUserTable(cfg.BcryptCost),
		tokens:   newTokenIssuer(cfg.Secret, cfg.TokenTTL),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		media:    map[string]storedFile{},
	}
	s.cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	app := fiber.New(fiber.Config{
		AppName:               "quickchat-mockapi",
		DisableStartupMessage: true,
		BodyLimit:             10 << 20,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          s.handleError,
	})
	app.Use(s.requestID)

	api := app.Group("/api/v1")
	api.Post("/login", s.login)
	api.Post("/register", s.register)
	api.Post("/media/upload", s.upload)
	api.Get("/users", s.listUsers)
	app.Get("/media/:id/:name", s.serveMedia)
	return app
}

// requestID keeps the caller's X-Request-ID or assigns one, and logs the
// request once it completes.
func (s *server) requestID(c *fiber.Ctx) error {
	id := c.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDHeader, id)
	c.Locals(requestIDHeader, id)

	start := time.Now()
	err := c.Next()
	s.log.Debug("request",
		"request_id", id,
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"took", time.Since(start),
	)
	return err
}

func (s *server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= 500 {
		s.log.Error("handler failed", "path", c.Path(), "err", err)
	}
	return c.Status(code).JSON(envelope{Success: false, Message: err.Error()})
}

func (s *server) login(c *fiber.Ctx) error {
	var req domain.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "Invalid request body")
	}
	// An empty identifier or password simply fails authentication.
	u, err := s.users.Authenticate(req.Email, req.Password)
	if errors.Is(err, errInvalidCredentials) {
		return c.JSON(envelope{Success: true, Message: msgInvalidCredentials})
	}
	if err != nil {
		return err
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		return err
	}
	return c.JSON(envelope{
		Success: true,
		Message: msgLoginSuccessful,
		Data:    fiber.Map{"token": token, "user": u},
	})
}

func (s *server) register(c *fiber.Ctx) error {
	var req registerBody
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "Invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "All fields are required and passwords must match")
	}

	u, msg, created, err := s.users.Create(req.FullName, req.Email, req.Phone, req.Password, req.ProfileImage)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return fiber.NewError(http.StatusBadRequest, "Password is too long")
	}
	if err != nil {
		return err
	}
	if !created {
		return c.JSON(envelope{Success: true, Message: msg})
	}
	s.log.Info("user registered", "user_id", u.ID)
	return c.Status(http.StatusCreated).JSON(envelope{Success: true, Message: msg, Data: u})
}

func (s *server) upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "No file uploaded")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	name := path.Base(fh.Filename)
	if name == "." || name == "/" {
		name = "upload"
	}
	id := uuid.NewString()
	s.mu.Lock()
	s.media[id] = storedFile{name: name, data: data}
	s.mu.Unlock()

	fileURL := s.cfg.PublicURL + "/media/" + id + "/" + url.PathEscape(name)
	return c.JSON(envelope{
		Success: true,
		Message: "File uploaded successfully",
		Data:    fiber.Map{"fileUrl": fileURL, "size": len(data)},
	})
}

func (s *server) serveMedia(c *fiber.Ctx) error {
	// Route params arrive still percent-encoded.
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "File not found")
	}
	s.mu.RLock()
	f, ok := s.media[c.Params("id")]
	s.mu.RUnlock()
	if !ok || f.name != name {
		return fiber.NewError(http.StatusNotFound, "File not found")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(f.data)
}

// listUsers is public. A bearer token, when sent, must be valid.
func (s *server) listUsers(c *fiber.Ctx) error {
	if auth := c.Get(fiber.HeaderAuthorization); auth != "" {
		raw, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "Invalid token")
		}
		if _, err := s.tokens.Verify(raw); err != nil {
			return fiber.NewError(http.StatusUnauthorized, "Invalid token")
		}
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 100)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}
	users, total := s.users.Page(page, limit)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Users fetched successfully",
		"data":    users,
		"page":    page,
		"limit":   limit,
		"total":   total,
	})
}
