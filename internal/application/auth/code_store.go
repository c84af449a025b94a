package auth

import (
	"sync"
	"time"
)

// codeTTL vigencia de un código 2FA.
const codeTTL = 5 * time.Minute

type entrada struct {
	codigo string
	expira time.Time
}

// CodeStore guarda los códigos 2FA pendientes por usuario, en memoria del
// proceso. La expiración se verifica al consumir y el barrido de entradas
// vencidas es perezoso, al momento de escribir. Se pierde al reiniciar, lo
// cual es aceptable para un paso de verificación de minutos; en un despliegue
// multi-instancia habría que externalizarlo.
type CodeStore struct {
	mu      sync.Mutex
	codigos map[int64]entrada
	ahora   func() time.Time
}

// NewCodeStore crea el almacén vacío.
func NewCodeStore() *CodeStore {
	return &CodeStore{codigos: make(map[int64]entrada), ahora: time.Now}
}

// Guardar registra (o reemplaza) el código vigente del usuario.
func (s *CodeStore) Guardar(userID int64, codigo string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.ahora()
	for id, e := range s.codigos {
		if now.After(e.expira) {
			delete(s.codigos, id)
		}
	}
	s.codigos[userID] = entrada{codigo: codigo, expira: now.Add(codeTTL)}
}

// Verificar consume el código del usuario. Devuelve (true, false) si
// coincide y está vigente; (false, true) si había código pero expiró;
// (false, false) si no coincide o no hay código pendiente. Tanto el acierto
// como la expiración eliminan la entrada.
func (s *CodeStore) Verificar(userID int64, codigo string) (ok, expirado bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, existe := s.codigos[userID]
	if !existe {
		return false, false
	}
	if s.ahora().After(e.expira) {
		delete(s.codigos, userID)
		return false, true
	}
	if e.codigo != codigo {
		return false, false
	}
	delete(s.codigos, userID)
	return true, false
}
