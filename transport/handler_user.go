package transport

import (
	"fmt"
	"net/http"

	"github.com/muhammadheryan/car-traders/constant"
	"github.com/muhammadheryan/car-traders/model"
	"github.com/muhammadheryan/car-traders/utils/errors"
	"github.com/muhammadheryan/car-traders/utils/logger"
	"go.uber.org/zap"
)

// Signup handler
// @Summary Sign up
// @Description Creates a user and starts a session. Visiting while logged in logs out first.
// @Tags Auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body model.SignupRequest false "Signup form"
// @Success 200 {object} View
// @Success 303 "Redirect to /"
// @Failure 400 {object} View
// @Router /signup [get]
// @Router /signup [post]
func (s *RestHandler) Signup(w http.ResponseWriter, req *Request) {
	s.logoutIfLoggedIn(w, req)

	if req.Method == http.MethodGet {
		s.render(w, req, http.StatusOK, viewSignup, map[string]any{"form": model.SignupRequest{}}, nil)
		return
	}

	var in model.SignupRequest
	fieldErrors, err := decodeInput(req.Request, &in)
	if err != nil {
		s.fail(w, req, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	echo := in
	echo.Password, echo.Confirm = "", ""
	form := map[string]any{"form": echo}
	if fieldErrors != nil {
		s.render(w, req, http.StatusBadRequest, viewSignup, form, fieldErrors)
		return
	}

	res, err := s.UserApp.Signup(req.Context(), &in)
	if err != nil {
		if isConflict(err) {
			req.Flash(constant.NoticeDanger, err.Error())
			s.render(w, req, http.StatusBadRequest, viewSignup, form, nil)
			return
		}
		s.fail(w, req, err)
		return
	}

	s.setSession(w, res.Token)
	req.Flash(constant.NoticeSuccess, fmt.Sprintf("Welcome to CarTraders %s", res.User.FirstName))
	s.redirect(w, req, "/")
}

// Login handler
// @Summary Log in
// @Description Authenticates with username and password. Visiting while logged in logs out first.
// @Tags Auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body model.LoginRequest false "Login form"
// @Success 200 {object} View
// @Success 303 "Redirect to /"
// @Failure 400 {object} View
// @Router /login [get]
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, req *Request) {
	s.logoutIfLoggedIn(w, req)

	if req.Method == http.MethodGet {
		s.render(w, req, http.StatusOK, viewLogin, map[string]any{"form": model.LoginRequest{}}, nil)
		return
	}

	var in model.LoginRequest
	fieldErrors, err := decodeInput(req.Request, &in)
	if err != nil {
		s.fail(w, req, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	form := map[string]any{"form": model.LoginRequest{Username: in.Username}}
	if fieldErrors != nil {
		s.render(w, req, http.StatusBadRequest, viewLogin, form, fieldErrors)
		return
	}

	res, err := s.UserApp.Authenticate(req.Context(), &in)
	if err != nil {
		if errors.Is(err, constant.ErrInvalidCredentials) {
			s.render(w, req, http.StatusBadRequest, viewLogin, form, map[string]string{"password": err.Error()})
			return
		}
		s.fail(w, req, err)
		return
	}

	s.setSession(w, res.Token)
	req.Flash(constant.NoticeSuccess, fmt.Sprintf("Welcome back %s", res.User.FirstName))
	s.redirect(w, req, "/")
}

// Logout handler
// @Summary Log out
// @Tags Auth
// @Success 303 "Redirect to /login"
// @Router /logout [post]
func (s *RestHandler) Logout(w http.ResponseWriter, req *Request) {
	if err := s.endSession(w, req); err != nil {
		logger.Warn("[Logout] end session", zap.String("error", err.Error()))
	}
	req.Flash(constant.NoticeSuccess, "Successfully logged out, please come back soon")
	s.redirect(w, req, "/login")
}

// Profile handler
// @Summary User profile
// @Description A user and their trades; can_edit is true only on the viewer's own profile
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} View
// @Failure 404 {object} errorResponse
// @Router /{id} [get]
func (s *RestHandler) Profile(w http.ResponseWriter, req *Request) {
	id, err := pathID(req)
	if err != nil {
		s.fail(w, req, err)
		return
	}

	profile, err := s.UserApp.GetProfile(req.Context(), id)
	if err != nil {
		s.fail(w, req, err)
		return
	}

	s.render(w, req, http.StatusOK, viewProfile, map[string]any{
		"user":     profile.User,
		"trades":   profile.Trades,
		"can_edit": req.owns(profile.User.ID),
	}, nil)
}

// EditUser handler
// @Summary Edit profile
// @Description Only the profile owner may view the form or submit it
// @Tags Users
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param id path int true "User ID"
// @Param request body model.UserEditRequest false "Edit form"
// @Success 200 {object} View
// @Success 303 "Redirect to /{id}"
// @Failure 400 {object} View
// @Failure 404 {object} errorResponse
// @Router /{id}/edit [get]
// @Router /{id}/edit [post]
func (s *RestHandler) EditUser(w http.ResponseWriter, req *Request) {
	id, err := pathID(req)
	if err != nil {
		s.fail(w, req, err)
		return
	}

	user, err := s.UserApp.GetForEdit(req.Context(), req.Identity, id)
	if err != nil {
		s.fail(w, req, err)
		return
	}

	if req.Method == http.MethodGet {
		s.render(w, req, http.StatusOK, viewUserEdit, map[string]any{
			"user": user,
			"form": model.UserEditRequest{
				FirstName:  user.FirstName,
				LastName:   user.LastName,
				Email:      user.Email,
				Phone:      user.Phone,
				Location:   user.Location(),
				CoverPic:   user.CoverPic,
				ProfilePic: user.ProfilePic,
			},
		}, nil)
		return
	}

	var in model.UserEditRequest
	fieldErrors, err := decodeInput(req.Request, &in)
	if err != nil {
		s.fail(w, req, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	form := map[string]any{"user": user, "form": in}
	if fieldErrors != nil {
		s.render(w, req, http.StatusBadRequest, viewUserEdit, form, fieldErrors)
		return
	}

	updated, err := s.UserApp.UpdateProfile(req.Context(), req.Identity, id, &in)
	if err != nil {
		if isConflict(err) {
			req.Flash(constant.NoticeDanger, err.Error())
			s.render(w, req, http.StatusBadRequest, viewUserEdit, form, nil)
			return
		}
		s.fail(w, req, err)
		return
	}

	req.Flash(constant.NoticeSuccess, "Profile successfully updated")
	s.redirect(w, req, fmt.Sprintf("/%d", updated.ID))
}

// DeleteUser handler
// @Summary Delete account
// @Description Deletes the account and every trade it owns, then ends the session
// @Tags Users
// @Param id path int true "User ID"
// @Success 303 "Redirect to /"
// @Failure 404 {object} errorResponse
// @Router /{id}/delete [post]
func (s *RestHandler) DeleteUser(w http.ResponseWriter, req *Request) {
	id, err := pathID(req)
	if err != nil {
		s.fail(w, req, err)
		return
	}

	user, err := s.UserApp.DeleteAccount(req.Context(), req.Identity, id, req.Token)
	if err != nil {
		s.fail(w, req, err)
		return
	}

	// DeleteAccount already ended the server-side session.
	http.SetCookie(w, s.cookie(sessionCookie, "", -1))
	req.Identity = nil
	req.Flash(constant.NoticeInfo, fmt.Sprintf("Sorry to see you go %s, please come back soon", user.Username))
	s.redirect(w, req, "/")
}

// logoutIfLoggedIn ends an existing session before the auth forms are shown.
func (s *RestHandler) logoutIfLoggedIn(w http.ResponseWriter, req *Request) {
	if req.Identity == nil {
		return
	}
	if err := s.endSession(w, req); err != nil {
		logger.Warn("[Logout] end session", zap.String("error", err.Error()))
	}
	req.Flash(constant.NoticeSuccess, "Successfully logged out")
}

func isConflict(err error) bool {
	return errors.Is(err, constant.ErrUsernameExists) ||
		errors.Is(err, constant.ErrEmailExists) ||
		errors.Is(err, constant.ErrPhoneExists)
}
