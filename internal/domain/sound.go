package domain

// DefaultSoundName имя звука, используемого по умолчанию
const DefaultSoundName = "default"

type soundKind int

const (
	soundUnset soundKind = iota
	soundNamed
	soundSystemDefault
)

// Sound звук уведомления: именованный ресурс, системный звук по умолчанию или не задан.
// Нулевое значение означает "не задан" и считается невалидным.
type Sound struct {
	kind soundKind
	name string
}

// NamedSound звук по имени ресурса
func NamedSound(name string) Sound {
	return Sound{kind: soundNamed, name: name}
}

// SystemDefaultSound системный звук
func SystemDefaultSound() Sound {
	return Sound{kind: soundSystemDefault}
}

// DefaultSound именованный звук по умолчанию
func DefaultSound() Sound {
	return NamedSound(DefaultSoundName)
}

// Name возвращает имя ресурса (пусто для системного и незаданного звука)
func (s Sound) Name() string {
	return s.name
}

// IsSystemDefault проверяет, является ли звук системным
func (s Sound) IsSystemDefault() bool {
	return s.kind == soundSystemDefault
}

// IsSet проверяет, задан ли звук
func (s Sound) IsSet() bool {
	return s.kind != soundUnset
}

// IsValid звук валиден, если у него есть имя или это системный звук
func (s Sound) IsValid() bool {
	switch s.kind {
	case soundNamed:
		return s.name != ""
	case soundSystemDefault:
		return true
	}
	return false
}

func (s Sound) String() string {
	switch s.kind {
	case soundNamed:
		return s.name
	case soundSystemDefault:
		return "<system>"
	}
	return "<unset>"
}
