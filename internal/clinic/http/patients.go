package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/openclinic/clinicd/internal/clinic/service"
	"github.com/openclinic/clinicd/pkg/clinicsdk"
	"github.com/openclinic/clinicd/pkg/httpx"
	"github.com/openclinic/clinicd/pkg/slogx"
)

type PatientsHandler struct {
	PatientService *service.PatientService
	Resolver       *PrincipalResolver
}

// HandleCreate godoc
//
//	@Summary		Patient Registration Endpoint
//	@Description	Register a patient in the caller's clinic. The medical record number is
//	@Description	allocated server-side from a per-clinic sequence.
//	@Tags			Patients
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clinicsdk.PatientRequest	true	"Patient details"
//	@Success		201		{object}	clinicsdk.PatientResponse	"patient_id, mrn"
//	@Failure		400		{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/patients [post].
func (h *PatientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	var req clinicsdk.PatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	dob, err := time.ParseInLocation(dateLayout, req.DateOfBirth, time.UTC)
	if err != nil {
		writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "date_of_birth must be YYYY-MM-DD")
		return
	}

	patient, err := h.PatientService.RegisterPatient(ctx, principal, service.RegisterPatientParams{
		GivenName:   req.GivenName,
		FamilyName:  req.FamilyName,
		DateOfBirth: dob,
		Sex:         req.Sex,
		Phone:       req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, clinicsdk.ErrorCodeInvalidRequest, "given_name, family_name and a past date_of_birth are required")
			return
		}
		log.Error("failed to register patient", "err", err)
		writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to register patient")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, patientResponse(patient, time.Now().UTC()))
}

// HandleList godoc
//
//	@Summary		Patient List Endpoint
//	@Description	List the clinic's patients, newest first.
//	@Tags			Patients
//	@Produce		json
//	@Success		200	{object}	clinicsdk.PatientsResponse	"patients"
//	@Failure		403	{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/patients [get].
func (h *PatientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	patients, err := h.PatientService.ListPatients(ctx, principal)
	if err != nil {
		log.Error("failed to list patients", "err", err)
		writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to list patients")
		return
	}

	now := time.Now().UTC()
	resp := clinicsdk.PatientsResponse{Patients: make([]clinicsdk.PatientResponse, 0, len(patients))}
	for _, p := range patients {
		resp.Patients = append(resp.Patients, patientResponse(p, now))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet godoc
//
//	@Summary		Patient Detail Endpoint
//	@Description	Fetch one patient in the caller's clinic.
//	@Tags			Patients
//	@Produce		json
//	@Param			id	path		string						true	"Patient ID"
//	@Success		200	{object}	clinicsdk.PatientResponse	"patient"
//	@Failure		404	{object}	clinicsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/patients/{id} [get].
func (h *PatientsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	principal, ok := h.Resolver.Resolve(w, r)
	if !ok {
		return
	}

	patient, err := h.PatientService.GetPatient(ctx, principal, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			writeError(w, http.StatusNotFound, clinicsdk.ErrorCodeNotFound, "Patient not found")
			return
		}
		log.Error("failed to fetch patient", "err", err)
		writeError(w, http.StatusInternalServerError, clinicsdk.ErrorCodeServerError, "Failed to fetch patient")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, patientResponse(patient, time.Now().UTC()))
}
