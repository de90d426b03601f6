package opcode

import (
	"slices"

	"github.com/retroenv/retrogolib/set"
)

const (
	// Marker is the byte that prefixes every instruction in the binary stream.
	// It is never used as an opcode value.
	Marker = 0x70

	// Sentinel is the opcode value that replaces unrecognized instruction names.
	Sentinel = 0xFE
)

// FlagCheckLengths lists the CheckFlagA payload lengths that occur in shipped scripts.
var FlagCheckLengths = []int{4, 19, 24}

// Opcode describes a single entry of the instruction table.
type Opcode struct {
	Name     string
	Code     byte
	Arity    int  // number of fixed argument bytes
	Variable bool // argument count is determined by scanning to the next marker
}

// Dialogue and text box handling.
var (
	// TextCount is the unnamed instruction 0x00 that opens every script.
	TextCount = &Opcode{Name: "0x00", Code: 0x00, Arity: 2}
	// Text displays a dialogue line, the 2 argument bytes are a big endian text table index.
	Text              = &Opcode{Name: "Text", Code: 0x02, Arity: 2}
	TextBoxFormat     = &Opcode{Name: "TextBoxFormat", Code: 0x03, Arity: 1}
	Speaker           = &Opcode{Name: "Speaker", Code: 0x21, Arity: 1}
	SetChoiceText     = &Opcode{Name: "SetChoiceText", Code: 0x2B, Arity: 1}
	StudentTitleEntry = &Opcode{Name: "StudentTitleEntry", Code: 0x0F, Arity: 3}
)

// Audio and video.
var (
	Movie  = &Opcode{Name: "Movie", Code: 0x05, Arity: 2}
	Voice  = &Opcode{Name: "Voice", Code: 0x08, Arity: 5}
	Music  = &Opcode{Name: "Music", Code: 0x09, Arity: 3}
	Sound  = &Opcode{Name: "Sound", Code: 0x0A, Arity: 3}
	SoundB = &Opcode{Name: "SoundB", Code: 0x0B, Arity: 2}
)

// Sprites, backgrounds and screen effects.
var (
	PostProcessingFilter = &Opcode{Name: "PostProcessingFilter", Code: 0x04, Arity: 4}
	Animation            = &Opcode{Name: "Animation", Code: 0x06, Arity: 8}
	TrialCamera          = &Opcode{Name: "TrialCamera", Code: 0x14, Arity: 3}
	Sprite               = &Opcode{Name: "Sprite", Code: 0x1E, Arity: 5}
	ScreenFlash          = &Opcode{Name: "ScreenFlash", Code: 0x1F, Arity: 7}
	SpriteFlash          = &Opcode{Name: "SpriteFlash", Code: 0x20, Arity: 5}
	ScreenFade           = &Opcode{Name: "ScreenFade", Code: 0x22, Arity: 3}
	CameraShake          = &Opcode{Name: "CameraShake", Code: 0x2E, Arity: 2}
	ShowBackground       = &Opcode{Name: "ShowBackground", Code: 0x30, Arity: 3}
)

// User interface and inventory.
var (
	AddTruthBullets = &Opcode{Name: "AddTruthBullets", Code: 0x0C, Arity: 2}
	AddPresents     = &Opcode{Name: "AddPresents", Code: 0x0D, Arity: 3}
	UnlockSkill     = &Opcode{Name: "UnlockSkill", Code: 0x0E, Arity: 2}
	ChangeUI        = &Opcode{Name: "ChangeUi", Code: 0x25, Arity: 2}
)

// Flow control, scripts and flags.
var (
	LoadMap        = &Opcode{Name: "LoadMap", Code: 0x15, Arity: 3}
	LoadScript     = &Opcode{Name: "LoadScript", Code: 0x19, Arity: 3}
	StopScript     = &Opcode{Name: "StopScript", Code: 0x1A}
	RunScript      = &Opcode{Name: "RunScript", Code: 0x1B, Arity: 3}
	Unknown1C      = &Opcode{Name: "0x1C", Code: 0x1C}
	SetFlag        = &Opcode{Name: "SetFlag", Code: 0x26, Arity: 3}
	CheckCharacter = &Opcode{Name: "CheckCharacter", Code: 0x27, Arity: 1}
	CheckObject    = &Opcode{Name: "CheckObject", Code: 0x29, Arity: 1}
	SetLabel       = &Opcode{Name: "SetLabel", Code: 0x2A, Arity: 2}
	Unknown33      = &Opcode{Name: "0x33", Code: 0x33, Arity: 4}
	GoToLabel      = &Opcode{Name: "GoToLabel", Code: 0x34, Arity: 2}
	CheckFlagA     = &Opcode{Name: "CheckFlagA", Code: 0x35, Variable: true}
	CheckFlagB     = &Opcode{Name: "CheckFlagB", Code: 0x36, Variable: true}
	WaitInput      = &Opcode{Name: "WaitInput", Code: 0x3A}
	WaitFrame      = &Opcode{Name: "WaitFrame", Code: 0x3B}
	IfFlagCheck    = &Opcode{Name: "IfFlagCheck", Code: 0x3C}
)

// Opcodes contains all known instructions ordered by code.
var Opcodes = []*Opcode{
	TextCount, Text, TextBoxFormat, PostProcessingFilter, Movie, Animation, Voice, Music,
	Sound, SoundB, AddTruthBullets, AddPresents, UnlockSkill, StudentTitleEntry, TrialCamera,
	LoadMap, LoadScript, StopScript, RunScript, Unknown1C, Sprite, ScreenFlash, SpriteFlash,
	Speaker, ScreenFade, ChangeUI, SetFlag, CheckCharacter, CheckObject, SetLabel, SetChoiceText,
	CameraShake, ShowBackground, Unknown33, GoToLabel, CheckFlagA, CheckFlagB, WaitInput,
	WaitFrame, IfFlagCheck,
}

var (
	byName   = make(map[string]*Opcode, len(Opcodes))
	byCode   [256]*Opcode
	variable = set.New[byte]()
)

func init() {
	for _, op := range Opcodes {
		if op.Code == Marker || op.Code == Sentinel {
			panic("opcode table contains reserved code " + op.Name)
		}
		if _, ok := byName[op.Name]; ok {
			panic("duplicate opcode name " + op.Name)
		}
		if byCode[op.Code] != nil {
			panic("duplicate opcode code for " + op.Name)
		}

		byName[op.Name] = op
		byCode[op.Code] = op
		if op.Variable {
			variable.Add(op.Code)
		}
	}
}

// IsVariable returns whether the code belongs to the flag check family.
func IsVariable(code byte) bool {
	return variable.Contains(code)
}

// ValidFlagCheckLength returns whether n is a CheckFlagA payload length seen in shipped scripts.
func ValidFlagCheckLength(n int) bool {
	return slices.Contains(FlagCheckLengths, n)
}
