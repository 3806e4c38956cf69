package testutil

// MinimalODF returns a modern organ with one manual whose only stop,
// Principal 8, is shown on the main panel.
func MinimalODF() string {
	return `[Organ]
ChurchName=Test Church
ChurchAddress=Test Street
HasPedals=N
NumberOfManuals=1
NumberOfWindchestGroups=1
NumberOfPanels=0

[Panel000]
Name=Main Panel
NumberOfGUIElements=1
NumberOfImages=0

[Panel000Element001]
Type=Stop
Manual=001
Stop=001

[WindchestGroup001]
Name=Main

[Manual001]
Name=Great
NumberOfStops=1
Stop001=001

[Stop001]
Name=Principal 8
WindchestGroup=001
NumberOfLogicalPipes=1
NumberOfAccessiblePipes=1
`
}

// LegacyConsoleODF returns a legacy-dialect organ: display metrics in
// [Organ], organ-level images, labels and setter elements, and Displayed
// objects carrying their own layout.
func LegacyConsoleODF() string {
	return `[Organ]
ChurchName=Test Church
ChurchAddress=Test Street
HasPedals=N
NumberOfManuals=1
NumberOfWindchestGroups=1
NumberOfImages=1
NumberOfLabels=1
NumberOfSetterElements=2
DispDrawstopCols=4
DispDrawstopRows=6

[Image001]
Image=images\wood.png

[Label001]
Name=Great Organ
DispXpos=10
DispYpos=20

[SetterElement001]
Type=GC

[SetterElement002]
Type=Setter001Divisional001

[WindchestGroup001]
Name=Main

[Manual001]
Name=Great
Displayed=Y
NumberOfStops=1
Stop001=001

[Stop001]
Name=Principal 8
Displayed=Y
DispDrawstopRow=2
DispDrawstopCol=3
WindchestGroup=001
NumberOfLogicalPipes=1
NumberOfAccessiblePipes=1
`
}

// ModernConsoleODF is LegacyConsoleODF in the modern dialect.
func ModernConsoleODF() string {
	return `[Organ]
ChurchName=Test Church
ChurchAddress=Test Street
HasPedals=N
NumberOfManuals=1
NumberOfWindchestGroups=1
NumberOfPanels=0

[Panel000]
Name=Main Panel
NumberOfGUIElements=5
NumberOfImages=1
DispDrawstopCols=4
DispDrawstopRows=6

[Panel000Image001]
Image=images\wood.png

[Panel000Element001]
Type=Label
Name=Great Organ
DispXpos=10
DispYpos=20

[Panel000Element002]
Type=Manual
Manual=001

[Panel000Element003]
Type=Stop
Manual=001
Stop=001
DispDrawstopRow=2
DispDrawstopCol=3

[Panel000Element004]
Type=GC

[Panel000Element005]
Type=Setter001Divisional001

[WindchestGroup001]
Name=Main

[Manual001]
Name=Great
NumberOfStops=1
Stop001=001

[Stop001]
Name=Principal 8
WindchestGroup=001
NumberOfLogicalPipes=1
NumberOfAccessiblePipes=1
`
}
