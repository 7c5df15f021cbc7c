package i18n

// Message keys mirror the error kinds emitted by the API layer.

var en = map[string]string{
	"error.invalid_credentials":  "invalid credentials",
	"error.unauthorized":         "authentication required",
	"error.token_revoked":        "session has been terminated",
	"error.forbidden":            "access forbidden",
	"error.user_not_found":       "user not found",
	"error.user_exists":          "user already exists",
	"error.item_not_found":       "item not found",
	"error.locker_not_found":     "locker not found",
	"error.locker_exists":        "locker already exists",
	"error.borrow_not_found":     "borrow record not found",
	"error.reservation_not_found": "reservation not found",
	"error.payment_not_found":    "payment not found",
	"error.item_unavailable":     "item is out of stock",
	"error.locker_unavailable":   "locker is not available",
	"error.already_returned":     "borrow was already returned",
	"error.record_in_use":        "record is referenced by borrow history",
	"error.invalid_input":        "invalid input",
	"error.invalid_role":         "unknown role",
	"error.invalid_transition":   "invalid status transition",
	"error.internal":             "internal server error",
}

var fr = map[string]string{
	"error.invalid_credentials":  "identifiants invalides",
	"error.unauthorized":         "authentification requise",
	"error.token_revoked":        "la session a été terminée",
	"error.forbidden":            "accès interdit",
	"error.user_not_found":       "utilisateur introuvable",
	"error.user_exists":          "l'utilisateur existe déjà",
	"error.item_not_found":       "article introuvable",
	"error.locker_not_found":     "casier introuvable",
	"error.locker_exists":        "le casier existe déjà",
	"error.borrow_not_found":     "emprunt introuvable",
	"error.reservation_not_found": "réservation introuvable",
	"error.payment_not_found":    "paiement introuvable",
	"error.item_unavailable":     "article en rupture de stock",
	"error.locker_unavailable":   "le casier n'est pas disponible",
	"error.already_returned":     "l'emprunt a déjà été retourné",
	"error.record_in_use":        "enregistrement référencé par l'historique d'emprunts",
	"error.invalid_input":        "entrée invalide",
	"error.invalid_role":         "rôle inconnu",
	"error.invalid_transition":   "transition d'état invalide",
	"error.internal":             "erreur interne du serveur",
}

var es = map[string]string{
	"error.invalid_credentials":  "credenciales inválidas",
	"error.unauthorized":         "autenticación requerida",
	"error.token_revoked":        "la sesión ha sido terminada",
	"error.forbidden":            "acceso prohibido",
	"error.user_not_found":       "usuario no encontrado",
	"error.user_exists":          "el usuario ya existe",
	"error.item_not_found":       "artículo no encontrado",
	"error.locker_not_found":     "casillero no encontrado",
	"error.locker_exists":        "el casillero ya existe",
	"error.borrow_not_found":     "préstamo no encontrado",
	"error.reservation_not_found": "reserva no encontrada",
	"error.payment_not_found":    "pago no encontrado",
	"error.item_unavailable":     "artículo agotado",
	"error.locker_unavailable":   "el casillero no está disponible",
	"error.already_returned":     "el préstamo ya fue devuelto",
	"error.record_in_use":        "registro referenciado por el historial de préstamos",
	"error.invalid_input":        "entrada inválida",
	"error.invalid_role":         "rol desconocido",
	"error.invalid_transition":   "transición de estado inválida",
	"error.internal":             "error interno del servidor",
}

var tr = map[string]string{
	"error.invalid_credentials":  "geçersiz kimlik bilgileri",
	"error.unauthorized":         "kimlik doğrulama gerekli",
	"error.token_revoked":        "oturum sonlandırıldı",
	"error.forbidden":            "erişim yasak",
	"error.user_not_found":       "kullanıcı bulunamadı",
	"error.user_exists":          "kullanıcı zaten mevcut",
	"error.item_not_found":       "eşya bulunamadı",
	"error.locker_not_found":     "dolap bulunamadı",
	"error.locker_exists":        "dolap zaten mevcut",
	"error.borrow_not_found":     "ödünç kaydı bulunamadı",
	"error.reservation_not_found": "rezervasyon bulunamadı",
	"error.payment_not_found":    "ödeme bulunamadı",
	"error.item_unavailable":     "eşya stokta yok",
	"error.locker_unavailable":   "dolap müsait değil",
	"error.already_returned":     "ödünç zaten iade edildi",
	"error.record_in_use":        "kayıt ödünç geçmişi tarafından referans alınıyor",
	"error.invalid_input":        "geçersiz girdi",
	"error.invalid_role":         "bilinmeyen rol",
	"error.invalid_transition":   "geçersiz durum geçişi",
	"error.internal":             "sunucu içi hata",
}
