// Package customers contiene los casos de uso de gestión de clientes:
// listado con búsqueda, guardado con semántica alta-o-edición y borrado
// protegido por la guarda referencial contra notas de entrega.
package customers

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/aarsoma/deliverynote-api/internal/application/dto"
	"github.com/aarsoma/deliverynote-api/internal/domain"
	"github.com/aarsoma/deliverynote-api/internal/domain/entity"
	"github.com/aarsoma/deliverynote-api/internal/domain/repository"
)

// TxRunner ejecuta el callback con repos atados a una misma transacción.
// El chequeo de referencias y el DELETE deben compartir transacción para
// que una nota creada entre ambos no deje la guarda sin efecto.
type TxRunner interface {
	RunCustomer(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		noteRepo repository.DeliveryNoteRepository,
	) error) error
}

// Patrones de validación de campos opcionales de contacto.
var (
	emailPattern = regexp.MustCompile(`^[\w\-.]+@([\w\-]+\.)+[\w\-]{2,4}$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-\s]+$`)
)

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	noteRepo repository.DeliveryNoteRepository
	txRunner TxRunner
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, noteRepo repository.DeliveryNoteRepository, txRunner TxRunner) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, noteRepo: noteRepo, txRunner: txRunner}
}

// List lista todos los clientes ordenados por nombre. Con query no vacío
// filtra por nombre ignorando mayúsculas y acentos ("Muñoz" ~ "munoz");
// el volumen de clientes de una instalación es pequeño, así que el filtro
// se aplica en memoria sobre el listado completo.
func (uc *CustomerUseCase) List(query string) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	needle := foldText(query)
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		if needle != "" && !strings.Contains(foldText(c.Name), needle) {
			continue
		}
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// Save crea el cliente si ID viene vacío y lo actualiza si no. En ambos
// casos refresca updated_at; created_at solo se asigna en el alta.
func (uc *CustomerUseCase) Save(in dto.SaveCustomerRequest) (*dto.CustomerResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	now := time.Now()

	if in.ID == "" {
		customer := &entity.Customer{
			ID:            uuid.New().String(),
			Name:          in.Name,
			Address:       in.Address,
			ContactPerson: in.ContactPerson,
			Phone:         in.Phone,
			Email:         in.Email,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := uc.repo.Create(customer); err != nil {
			return nil, err
		}
		return toCustomerResponse(customer), nil
	}

	customer, err := uc.repo.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	customer.Name = in.Name
	customer.Address = in.Address
	customer.ContactPerson = in.ContactPerson
	customer.Phone = in.Phone
	customer.Email = in.Email
	customer.UpdatedAt = now
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// CanDelete indica si el cliente puede borrarse: false si alguna nota de
// entrega lo referencia.
func (uc *CustomerUseCase) CanDelete(id string) (bool, error) {
	count, err := uc.noteRepo.CountByCustomer(id)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// Delete elimina el cliente. El chequeo de referencias y el borrado corren
// en la misma transacción; si el cliente está referenciado devuelve
// ErrCustomerReferenced y no toca la fila.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunCustomer(ctx, func(
		customerRepo repository.CustomerRepository,
		noteRepo repository.DeliveryNoteRepository,
	) error {
		customer, err := customerRepo.GetByID(id)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		count, err := noteRepo.CountByCustomer(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrCustomerReferenced
		}
		return customerRepo.Delete(id)
	})
}

// validate aplica las reglas de campos: nombre obligatorio; email y
// teléfono opcionales pero con formato si vienen informados.
func validate(in dto.SaveCustomerRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ErrInvalidInput
	}
	if in.Email != "" && !emailPattern.MatchString(in.Email) {
		return domain.ErrInvalidInput
	}
	if in.Phone != "" && !phonePattern.MatchString(in.Phone) {
		return domain.ErrInvalidInput
	}
	return nil
}

// foldText normaliza para búsqueda: minúsculas y sin marcas diacríticas.
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Address:       c.Address,
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		Email:         c.Email,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
