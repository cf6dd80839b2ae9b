package consultationRepository

const (
	queryCreateConsultation = `
		INSERT INTO consultations (
			id,
			name,
			email,
			company,
			firm_type,
			phone,
			interests,
			message,
			timezone,
			preferred_at,
			duration_minutes,
			status,
			channel,
			event_id,
			invite_key,
			created_at,
			updated_at
		) VALUES (
			:id,
			:name,
			:email,
			:company,
			:firm_type,
			:phone,
			:interests,
			:message,
			:timezone,
			:preferred_at,
			:duration_minutes,
			:status,
			:channel,
			:event_id,
			:invite_key,
			:created_at,
			:updated_at
		)
	`

	queryGetConsultationByID = `
		SELECT
			id,
			name,
			email,
			company,
			firm_type,
			phone,
			interests,
			message,
			timezone,
			preferred_at,
			duration_minutes,
			status,
			channel,
			event_id,
			invite_key,
			created_at,
			updated_at
		FROM consultations
		WHERE id = :id
	`

	queryListConsultations = `
		SELECT
			id,
			name,
			email,
			company,
			firm_type,
			phone,
			interests,
			message,
			timezone,
			preferred_at,
			duration_minutes,
			status,
			channel,
			event_id,
			invite_key,
			created_at,
			updated_at
		FROM consultations
		WHERE (CAST(:status AS TEXT) = '' OR status = :status)
		ORDER BY created_at DESC, id DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountConsultations = `
		SELECT COUNT(*)
		FROM consultations
		WHERE (CAST(:status AS TEXT) = '' OR status = :status)
	`

	queryUpdateDelivery = `
		UPDATE consultations
		SET
			status = :status,
			channel = :channel,
			event_id = :event_id,
			invite_key = :invite_key,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryUpdateStatus = `
		UPDATE consultations
		SET
			status = :status,
			updated_at = :updated_at
		WHERE id = :id
	`
)
