package Models

// CanAccessConsultation is the single authorization predicate for
// consultation-scoped resources. Patients only see their own cases,
// doctors only the cases assigned to them; every other role is
// privileged and unrestricted.
func CanAccessConsultation(consultation *Consultation, actorID uint, role Role) bool {
	switch role {
	case RolePatient:
		return consultation.PatientID == actorID
	case RoleDoctor:
		return consultation.DoctorID != nil && *consultation.DoctorID == actorID
	default:
		return true
	}
}
