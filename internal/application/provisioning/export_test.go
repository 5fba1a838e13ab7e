package provisioning

import "time"

// SetClock fija el reloj del caso de uso en los tests.
func SetClock(uc *TenantUseCase, now func() time.Time) {
	uc.now = now
}
