package clinicsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a client for the clinicd service. The bearer token comes
// from the external identity provider; the SDK never mints tokens
// itself.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

// NewClient creates a clinicd client without an attached token. Call
// WithToken before invoking authenticated endpoints.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken returns a copy of the client carrying the given bearer
// token. The receiver is unchanged, so one base client can serve many
// users.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// do performs a JSON request and decodes the response into out (out
// may be nil for endpoints with no interesting body).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseErrorResponse(resp, respBody)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Bootstrap mints the founding clinic code on an empty system.
func (c *Client) Bootstrap(ctx context.Context, req BootstrapRequest) (CodeResponse, error) {
	var out CodeResponse
	err := c.do(ctx, http.MethodPost, "/v1/bootstrap", req, &out)
	return out, err
}

// IssueCode mints a registration code for the caller's clinic.
func (c *Client) IssueCode(ctx context.Context, req IssueCodeRequest) (CodeResponse, error) {
	var out CodeResponse
	err := c.do(ctx, http.MethodPost, "/v1/codes/issue", req, &out)
	return out, err
}

// RedeemCode joins the caller to a clinic as a doctor.
func (c *Client) RedeemCode(ctx context.Context, code string) (JoinResponse, error) {
	var out JoinResponse
	err := c.do(ctx, http.MethodPost, "/v1/codes/redeem", RedeemCodeRequest{Code: code}, &out)
	return out, err
}

// RegisterClinic founds a clinic from a clinic-type code.
func (c *Client) RegisterClinic(ctx context.Context, code, name string) (JoinResponse, error) {
	var out JoinResponse
	err := c.do(ctx, http.MethodPost, "/v1/clinics/register", RegisterClinicRequest{
		Code:       code,
		ClinicName: name,
	}, &out)
	return out, err
}

// Membership returns the caller's active membership.
func (c *Client) Membership(ctx context.Context) (MembershipResponse, error) {
	var out MembershipResponse
	err := c.do(ctx, http.MethodGet, "/v1/membership", nil, &out)
	return out, err
}

// Clinic returns the caller's clinic.
func (c *Client) Clinic(ctx context.Context) (ClinicResponse, error) {
	var out ClinicResponse
	err := c.do(ctx, http.MethodGet, "/v1/clinic", nil, &out)
	return out, err
}

// SetClinicStatus updates the clinic status. Admin only.
func (c *Client) SetClinicStatus(ctx context.Context, status string) (ClinicResponse, error) {
	var out ClinicResponse
	err := c.do(ctx, http.MethodPost, "/v1/clinic/status", ClinicStatusRequest{Status: status}, &out)
	return out, err
}

// ListStaff lists the clinic's memberships. Admin only.
func (c *Client) ListStaff(ctx context.Context) (StaffResponse, error) {
	var out StaffResponse
	err := c.do(ctx, http.MethodGet, "/v1/staff", nil, &out)
	return out, err
}

// DeactivateStaff retires a membership. Admin only.
func (c *Client) DeactivateStaff(ctx context.Context, membershipID string) error {
	path := "/v1/staff/" + url.PathEscape(membershipID) + "/deactivate"
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// RegisterPatient registers a patient in the caller's clinic.
func (c *Client) RegisterPatient(ctx context.Context, req PatientRequest) (PatientResponse, error) {
	var out PatientResponse
	err := c.do(ctx, http.MethodPost, "/v1/patients", req, &out)
	return out, err
}

// ListPatients lists the clinic's patients.
func (c *Client) ListPatients(ctx context.Context) (PatientsResponse, error) {
	var out PatientsResponse
	err := c.do(ctx, http.MethodGet, "/v1/patients", nil, &out)
	return out, err
}

// GetPatient fetches one patient.
func (c *Client) GetPatient(ctx context.Context, patientID string) (PatientResponse, error) {
	var out PatientResponse
	err := c.do(ctx, http.MethodGet, "/v1/patients/"+url.PathEscape(patientID), nil, &out)
	return out, err
}

// RecordVisit records a visit for a patient.
func (c *Client) RecordVisit(ctx context.Context, patientID string, req VisitRequest) (VisitResponse, error) {
	var out VisitResponse
	path := "/v1/patients/" + url.PathEscape(patientID) + "/visits"
	err := c.do(ctx, http.MethodPost, path, req, &out)
	return out, err
}

// ListVisits lists a patient's visits.
func (c *Client) ListVisits(ctx context.Context, patientID string) (VisitsResponse, error) {
	var out VisitsResponse
	path := "/v1/patients/" + url.PathEscape(patientID) + "/visits"
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// ScheduleAppointment books an appointment.
func (c *Client) ScheduleAppointment(ctx context.Context, req AppointmentRequest) (AppointmentResponse, error) {
	var out AppointmentResponse
	err := c.do(ctx, http.MethodPost, "/v1/appointments", req, &out)
	return out, err
}

// ListAppointments lists the clinic's appointments on a day given in
// 2006-01-02 form.
func (c *Client) ListAppointments(ctx context.Context, day string) (AppointmentsResponse, error) {
	var out AppointmentsResponse
	err := c.do(ctx, http.MethodGet, "/v1/appointments?day="+url.QueryEscape(day), nil, &out)
	return out, err
}

// CancelAppointment cancels a scheduled appointment.
func (c *Client) CancelAppointment(ctx context.Context, appointmentID string) error {
	path := "/v1/appointments/" + url.PathEscape(appointmentID) + "/cancel"
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// ScheduleFollowUp schedules a follow-up.
func (c *Client) ScheduleFollowUp(ctx context.Context, req FollowUpRequest) (FollowUpResponse, error) {
	var out FollowUpResponse
	err := c.do(ctx, http.MethodPost, "/v1/followups", req, &out)
	return out, err
}

// ListDueFollowUps lists pending and overdue follow-ups.
func (c *Client) ListDueFollowUps(ctx context.Context) (FollowUpsResponse, error) {
	var out FollowUpsResponse
	err := c.do(ctx, http.MethodGet, "/v1/followups/due", nil, &out)
	return out, err
}

// CompleteFollowUp marks a follow-up done.
func (c *Client) CompleteFollowUp(ctx context.Context, followUpID string) error {
	path := "/v1/followups/" + url.PathEscape(followUpID) + "/complete"
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// Audit lists the clinic's audit entries. Admin only.
func (c *Client) Audit(ctx context.Context, limit int) (AuditResponse, error) {
	var out AuditResponse
	path := "/v1/audit"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// Dashboard returns the per-clinic summary counts.
func (c *Client) Dashboard(ctx context.Context) (DashboardResponse, error) {
	var out DashboardResponse
	err := c.do(ctx, http.MethodGet, "/v1/dashboard", nil, &out)
	return out, err
}

// Livez checks the liveness probe.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", nil, &out)
	return out, err
}

// Readyz checks the readiness probe.
func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/readyz", nil, &out)
	return out, err
}
