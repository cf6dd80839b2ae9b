package assistantRepository

const (
	queryCreateTurn = `
		INSERT INTO chat_turns (
			id,
			session_id,
			user_message,
			reply,
			route,
			intent,
			score,
			last_service,
			created_at
		) VALUES (
			:id,
			:session_id,
			:user_message,
			:reply,
			:route,
			:intent,
			:score,
			:last_service,
			:created_at
		)
	`

	queryGetTurnsBySession = `
		SELECT
			id,
			session_id,
			user_message,
			reply,
			route,
			intent,
			score,
			last_service,
			created_at
		FROM chat_turns
		WHERE session_id = :session_id
		ORDER BY created_at ASC, id ASC
	`

	queryCountTurns = `
		SELECT
			COUNT(*) AS turns,
			COUNT(DISTINCT session_id) AS sessions
		FROM chat_turns
		WHERE created_at >= :since
	`

	queryCountByRoute = `
		SELECT
			route,
			COUNT(*) AS count
		FROM chat_turns
		WHERE created_at >= :since
		GROUP BY route
		ORDER BY count DESC, route ASC
	`

	queryTopIntents = `
		SELECT
			intent,
			COUNT(*) AS count
		FROM chat_turns
		WHERE created_at >= :since AND intent <> ''
		GROUP BY intent
		ORDER BY count DESC, intent ASC
		LIMIT :limit
	`

	queryTopServices = `
		SELECT
			last_service,
			COUNT(*) AS count
		FROM chat_turns
		WHERE created_at >= :since AND last_service <> ''
		GROUP BY last_service
		ORDER BY count DESC, last_service ASC
		LIMIT :limit
	`
)
